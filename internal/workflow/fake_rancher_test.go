// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package workflow

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/gaucho-cli/gaucho/internal/api"
	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
)

const never = -1

var actionTargets = map[string]string{
	apimodel.ActionActivate:      lifecycle.StateActive,
	apimodel.ActionDeactivate:    lifecycle.StateInactive,
	apimodel.ActionRemove:        lifecycle.StateRemoved,
	apimodel.ActionDelete:        lifecycle.StateRemoved,
	apimodel.ActionUpgrade:       lifecycle.StateUpgraded,
	apimodel.ActionFinishUpgrade: lifecycle.StateActive,
	apimodel.ActionRollback:      lifecycle.StateActive,
}

// stateActions is what a Rancher server advertises per state.
var stateActions = map[string][]string{
	lifecycle.StateActive:         {apimodel.ActionDeactivate, apimodel.ActionUpgrade, apimodel.ActionRestart},
	lifecycle.StateUpdatingActive: {apimodel.ActionDeactivate},
	lifecycle.StateInactive:       {apimodel.ActionActivate, apimodel.ActionRemove, apimodel.ActionDelete},
	lifecycle.StateUpgraded:       {apimodel.ActionFinishUpgrade, apimodel.ActionRollback},
}

type fakeResource struct {
	id           string
	name         string
	state        string
	launchConfig string
	containers   []apimodel.Container

	// settleAfter is the number of GETs after an action before the target
	// state shows up. never keeps the resource in its transitional state.
	settleAfter int
	pending     string
	countdown   int
}

type request struct {
	Method string
	Path   string
	Action string
	Body   []byte
}

type fakeRancher struct {
	t        *testing.T
	srv      *httptest.Server
	mu       sync.Mutex
	services map[string]*fakeResource
	projects map[string]*fakeResource
	order    []string
	requests []request
	frames   []string
}

func newFakeRancher(t *testing.T) *fakeRancher {
	t.Helper()
	f := &fakeRancher{
		t:        t,
		services: map[string]*fakeResource{},
		projects: map[string]*fakeResource{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/services/{$}", f.listServices)
	mux.HandleFunc("GET /v1/services", f.listServices)
	mux.HandleFunc("GET /v1/services/{id}", f.getResource(f.services, "/v1/services/"))
	mux.HandleFunc("POST /v1/services/{id}", f.action(f.services, "/v1/services/"))
	mux.HandleFunc("GET /v1/services/{id}/instances", f.instances)
	mux.HandleFunc("POST /v1/containers/{id}", f.containerAction)
	mux.HandleFunc("GET /v1/projects/{$}", f.listProjects)
	mux.HandleFunc("GET /v1/project", f.listProjects)
	mux.HandleFunc("GET /v1/projects/{id}", f.getResource(f.projects, "/v1/projects/"))
	mux.HandleFunc("POST /v1/projects/{id}", f.action(f.projects, "/v1/projects/"))
	mux.HandleFunc("DELETE /v1/projects/{id}", f.action(f.projects, "/v1/projects/"))
	mux.HandleFunc("GET /relay", f.relay)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRancher) addService(res *fakeResource) *fakeResource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[res.id] = res
	f.order = append(f.order, res.id)
	return res
}

func (f *fakeRancher) addProject(res *fakeResource) *fakeResource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[res.id] = res
	return res
}

func (f *fakeRancher) runner() *Runner {
	client := api.NewClient(api.Config{Host: f.srv.URL, AccessKey: "userid", SecretKey: "password"}, nil)
	poller := &poll.Poller{
		Interval: poll.DefaultInterval,
		Sleep:    func(ctx context.Context, d time.Duration) error { return ctx.Err() },
	}
	return NewRunner(client, poller)
}

// mutations returns every POST and DELETE the server received.
func (f *fakeRancher) mutations() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []request
	for _, r := range f.requests {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeRancher) render(res *fakeResource, base string) apimodel.Resource {
	self := f.srv.URL + base + res.id
	actions := map[string]string{}
	for _, a := range stateActions[res.state] {
		actions[a] = self + "?action=" + a
	}
	out := apimodel.Resource{
		ID:      res.id,
		Name:    res.name,
		Type:    "service",
		State:   res.state,
		Actions: actions,
		Links:   map[string]string{apimodel.LinkInstances: self + "/instances"},
	}
	if res.launchConfig != "" {
		out.LaunchConfig = json.RawMessage(res.launchConfig)
	}
	return out
}

func (f *fakeRancher) record(r *http.Request) []byte {
	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, request{
		Method: r.Method,
		Path:   r.URL.Path,
		Action: r.URL.Query().Get("action"),
		Body:   body,
	})
	return body
}

func (f *fakeRancher) write(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		f.t.Errorf("failed to marshal fake response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(data)
}

func notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"type":"error","status":404,"code":"NotFound","message":"not found"}`))
}

func (f *fakeRancher) getResource(set map[string]*fakeResource, base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r)

		res, ok := set[r.PathValue("id")]
		if !ok {
			notFound(w)
			return
		}

		if res.pending != "" && res.countdown != never {
			if res.countdown == 0 {
				res.state = res.pending
				res.pending = ""
			} else {
				res.countdown--
			}
		}

		f.write(w, f.render(res, base))
	}
}

func (f *fakeRancher) action(set map[string]*fakeResource, base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		body := f.record(r)

		res, ok := set[r.PathValue("id")]
		if !ok {
			notFound(w)
			return
		}

		action := r.URL.Query().Get("action")
		target, known := actionTargets[action]
		if !known {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"type":"error","status":422,"code":"InvalidAction","message":"invalid action"}`))
			return
		}

		if action == apimodel.ActionUpgrade {
			var req apimodel.UpgradeRequest
			if err := json.Unmarshal(body, &req); err == nil && len(req.InServiceStrategy.LaunchConfig) > 0 {
				res.launchConfig = string(req.InServiceStrategy.LaunchConfig)
			}
		}

		if res.settleAfter == 0 {
			res.state = target
		} else {
			res.state = "upgrading"
			res.pending = target
			res.countdown = res.settleAfter
		}

		w.WriteHeader(http.StatusAccepted)
		f.write(w, f.render(res, base))
	}
}

func (f *fakeRancher) listServices(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(r)

	name := r.URL.Query().Get("name")
	out := apimodel.Collection[apimodel.Resource]{Type: "collection", Data: []apimodel.Resource{}}
	for _, id := range f.order {
		res := f.services[id]
		if name == "" || res.name == name {
			out.Data = append(out.Data, f.render(res, "/v1/services/"))
		}
	}
	f.write(w, out)
}

func (f *fakeRancher) listProjects(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(r)

	name := r.URL.Query().Get("name")
	out := apimodel.Collection[apimodel.Resource]{Type: "collection", Data: []apimodel.Resource{}}
	for _, res := range f.projects {
		if name == "" || res.name == name {
			out.Data = append(out.Data, f.render(res, "/v1/projects/"))
		}
	}
	f.write(w, out)
}

func (f *fakeRancher) instances(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(r)

	res, ok := f.services[r.PathValue("id")]
	if !ok {
		notFound(w)
		return
	}

	out := apimodel.Collection[apimodel.Container]{Type: "collection", Data: []apimodel.Container{}}
	out.Data = append(out.Data, res.containers...)
	f.write(w, out)
}

func (f *fakeRancher) containerAction(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(r)

	if r.URL.Query().Get("action") == apimodel.ActionExecute {
		f.write(w, apimodel.HostAccess{Token: "one-time", URL: "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/relay"})
		return
	}
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte(`{}`))
}

func (f *fakeRancher) relay(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") != "one-time" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	f.mu.Lock()
	frames := append([]string(nil), f.frames...)
	f.mu.Unlock()

	for _, frame := range frames {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(base64.StdEncoding.EncodeToString([]byte(frame)))); err != nil {
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (f *fakeRancher) container(id, state string, actions ...string) apimodel.Container {
	c := apimodel.Container{ID: id, Name: "c-" + id, Type: "container", State: state, Actions: map[string]string{}}
	for _, a := range actions {
		c.Actions[a] = f.srv.URL + "/v1/containers/" + id + "?action=" + a
	}
	return c
}
