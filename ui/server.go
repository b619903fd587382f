package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/pcomb/combinator"
	"github.com/dhamidi/pcomb/ebnf"
	"github.com/dhamidi/pcomb/format"
	"github.com/dhamidi/pcomb/grammars"
)

//go:embed static templates
var embeddedFS embed.FS

type Server struct {
	staticFS   fs.FS
	templateFS fs.FS
	mux        *http.ServeMux
	log        commonlog.Logger
}

func NewServer() (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	if _, err := template.ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		staticFS:   staticFS,
		templateFS: templateFS,
		mux:        http.NewServeMux(),
		log:        commonlog.GetLogger("pcomb.ui"),
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /parse", s.handleParse)
	s.mux.HandleFunc("GET /grammars", s.handleGrammars)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render parses the templates on every request so that files under
// ui/templates take effect without a restart.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Errorf("render %s: %s", name, err)
	}
}

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Grammar string `json:"grammar"`
	Input   string `json:"input"`
	EOF     bool   `json:"eof"`
	All     bool   `json:"all"`
}

type indexData struct {
	Grammars []*grammars.Grammar
	Request  ParseRequest
	Result   string
	OK       bool
	Parsed   bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", indexData{
		Grammars: grammars.All(),
		Request:  ParseRequest{Grammar: "ab", EOF: true},
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	isJSON := r.Header.Get("Content-Type") == "application/json"

	if isJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Grammar = r.FormValue("grammar")
		req.Input = r.FormValue("input")
		req.EOF = r.FormValue("eof") != ""
		req.All = r.FormValue("all") != ""
	}

	g, ok := grammars.Lookup(req.Grammar)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown grammar %q", req.Grammar), http.StatusNotFound)
		return
	}

	out := Parse(g, req)
	s.log.Debugf("parse %s: ok=%t", g.Name, out.OK())

	if isJSON {
		w.Header().Set("Content-Type", "application/json")
		if err := format.NewJSONEncoder(w).Encode(out); err != nil {
			s.log.Errorf("encode result: %s", err)
		}
		return
	}

	var buf bytes.Buffer
	if err := format.NewTreeEncoder(&buf, false).Encode(out); err != nil {
		http.Error(w, "encode result: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "index.html", indexData{
		Grammars: grammars.All(),
		Request:  req,
		Result:   buf.String(),
		OK:       out.OK(),
		Parsed:   true,
	})
}

// Parse runs the grammar on the request input, pruning excluded nodes
// unless All is set.
func Parse(g *grammars.Grammar, req ParseRequest) combinator.Outcome {
	var opts []combinator.RunOption
	if req.EOF {
		opts = append(opts, combinator.RequireEOF())
	}
	out := combinator.Run(g.Root, req.Input, opts...)
	if out.Node != nil && !req.All {
		out.Node = out.Node.Prune()
	}
	return out
}

type grammarInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EBNF        string `json:"ebnf"`
}

func (s *Server) handleGrammars(w http.ResponseWriter, r *http.Request) {
	var infos []grammarInfo
	for _, g := range grammars.All() {
		text, err := ebnf.Describe(g.Root, "")
		if err != nil {
			http.Error(w, "describe "+g.Name+": "+err.Error(), http.StatusInternalServerError)
			return
		}
		infos = append(infos, grammarInfo{Name: g.Name, Description: g.Description, EBNF: text})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		s.log.Errorf("encode grammars: %s", err)
	}
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS serves files from primaryPath on disk when present and falls
// back to secondary.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
