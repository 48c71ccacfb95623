package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evhist/evhist/internal/event"
	"github.com/evhist/evhist/internal/recorder"
)

// Router provides embeddable HTTP handlers for the event-history recorder.
// Endpoints:
//   POST {basePath}/events       body: {"kind": "...", "rendered": "..."} — deliver an event
//   GET  {basePath}/events       query: include=...&exclude=... (repeatable kind names)
//   GET  {basePath}/render       query: filter=...&highlight=... (repeatable kind names)
//   GET  {basePath}/active
//   POST {basePath}/active       body: {"active": true}
//   POST {basePath}/clear
//   GET  {basePath}/kinds
//   GET  {basePath}/healthz
// basePath may be empty or start with '/'; no trailing slash.

type Router struct {
	rec      *recorder.Recorder
	reg      *event.Registry
	basePath string
}

// NewRouter constructs a new Router with configurable basePath.
// Example basePath: "/api" results in /api/events, /api/render, /api/active.
func NewRouter(rec *recorder.Recorder, reg *event.Registry, basePath string) *Router {
	return &Router{rec: rec, reg: reg, basePath: sanitizeBase(basePath)}
}

// Handler returns an http.Handler powered by gin that can be mounted in any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.POST("/events", r.handleObserve)
	group.GET("/events", r.handleEvents)
	group.GET("/render", r.handleRender)
	group.GET("/active", r.handleGetActive)
	group.POST("/active", r.handleSetActive)
	group.POST("/clear", r.handleClear)
	group.GET("/kinds", r.handleKinds)
	group.GET("/healthz", r.handleHealthz)
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
// Shut it down via http.Server's Shutdown or Close.
func NewServer(addr, basePath string, rec *recorder.Recorder, reg *event.Registry) (*http.Server, error) {
	r := NewRouter(rec, reg, basePath)
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server, nil
}

// --- Handlers ---

type errorResp struct {
	Error string `json:"error"`
}

type okResp struct {
	OK bool `json:"ok"`
}

type observeReq struct {
	Kind     string `json:"kind"`
	Rendered string `json:"rendered"`
}

func (r *Router) handleObserve(c *gin.Context) {
	var req observeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.Kind == "" {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: "kind required"})
		return
	}
	k, ok := r.reg.Lookup(req.Kind)
	if !ok {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: "unknown event kind: " + req.Kind})
		return
	}
	r.rec.Observe(event.Raw{EventKind: k, Rendered: req.Rendered})
	writeJSON(c, http.StatusOK, okResp{OK: true})
}

func (r *Router) handleEvents(c *gin.Context) {
	includes, err := r.resolveParam(c, "include")
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	excludes, err := r.resolveParam(c, "exclude")
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, r.rec.EventsFiltered(includes, excludes))
}

func (r *Router) handleRender(c *gin.Context) {
	filtered, err := r.resolveParam(c, "filter")
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	highlighted, err := r.resolveParam(c, "highlight")
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(r.rec.RenderText(filtered, highlighted)))
}

type activeResp struct {
	Active bool `json:"active"`
	Size   int  `json:"size"`
}

func (r *Router) handleGetActive(c *gin.Context) {
	writeJSON(c, http.StatusOK, activeResp{Active: r.rec.IsActive(), Size: r.rec.Size()})
}

type setActiveReq struct {
	Active *bool `json:"active"`
}

func (r *Router) handleSetActive(c *gin.Context) {
	var req setActiveReq
	if q := c.Query("active"); q != "" {
		v, err := strconv.ParseBool(q)
		if err != nil {
			writeJSON(c, http.StatusBadRequest, errorResp{Error: "invalid active value"})
			return
		}
		req.Active = &v
	} else if err := c.ShouldBindJSON(&req); err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.Active == nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: "active required"})
		return
	}
	r.rec.SetActive(*req.Active)
	writeJSON(c, http.StatusOK, activeResp{Active: r.rec.IsActive(), Size: r.rec.Size()})
}

func (r *Router) handleClear(c *gin.Context) {
	r.rec.Clear()
	writeJSON(c, http.StatusOK, okResp{OK: true})
}

func (r *Router) handleHealthz(c *gin.Context) {
	writeJSON(c, http.StatusOK, okResp{OK: true})
}

func (r *Router) handleKinds(c *gin.Context) {
	writeJSON(c, http.StatusOK, r.reg.Names())
}

// resolveParam maps repeated kind-name query params to a KindSet. An absent
// param yields a nil set so the recorder's default coverage applies.
func (r *Router) resolveParam(c *gin.Context, name string) (event.KindSet, error) {
	names := c.QueryArray(name)
	return r.reg.Resolve(names)
}
