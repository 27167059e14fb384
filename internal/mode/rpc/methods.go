// ABOUTME: Handler implementations for the comparison RPC methods
// ABOUTME: Router dispatch plus a registry of live comparisons keyed by handle

package rpc

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// HandlerFunc processes an RPC request's params and returns a Response.
type HandlerFunc func(params json.RawMessage) Response

// Router dispatches RPC requests to registered handlers by method name.
type Router struct {
	handlers map[string]HandlerFunc
}

// NewRouter creates a Router with an empty handler registry.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Register associates a method name with a handler function.
func (r *Router) Register(method string, handler HandlerFunc) {
	r.handlers[method] = handler
}

// Handle dispatches a request to the registered handler, or returns
// a method-not-found error if no handler is registered.
func (r *Router) Handle(req Request) Response {
	h, ok := r.handlers[req.Method]
	if !ok {
		return Response{ID: req.ID, Error: NewMethodNotFoundError(req.Method)}
	}

	raw, err := marshalParams(req.Params)
	if err != nil {
		return Response{ID: req.ID, Error: NewInvalidParamsError(err.Error())}
	}

	resp := h(raw)
	resp.ID = req.ID
	return resp
}

// marshalParams converts the generic Params field into json.RawMessage
// so handlers can decode it themselves.
func marshalParams(params any) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	if raw, ok := params.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(params)
}

// Registry owns the live comparisons exposed over RPC. One frontend may
// drive several comparisons at once (one per matrix cell), so handles are
// explicit.
type Registry struct {
	mu          sync.Mutex
	comparisons map[string]*engine.Comparison
	nextID      int
}

// NewRegistry creates an empty comparison registry.
func NewRegistry() *Registry {
	return &Registry{comparisons: make(map[string]*engine.Comparison)}
}

// NewComparisonRouter wires the comparison method handlers into a Router.
func NewComparisonRouter(reg *Registry) *Router {
	r := NewRouter()
	r.Register(MethodCreate, reg.handleCreate)
	r.Register(MethodAction, reg.handleAction)
	r.Register(MethodState, reg.handleState)
	r.Register(MethodResult, reg.handleResult)
	r.Register(MethodClose, reg.handleClose)
	r.Register(MethodListScales, handleListScales)
	return r
}

func (reg *Registry) handleCreate(params json.RawMessage) Response {
	var p CreateParams
	if err := json.Unmarshal(params, &p); err != nil {
		return Response{Error: NewInvalidParamsError(err.Error())}
	}
	if p.ObjectA == "" || p.ObjectB == "" {
		return Response{Error: NewInvalidParamsError("object_a and object_b are required")}
	}

	c := engine.New(p.ObjectA, p.ObjectB)
	if p.Scale != "" {
		t, err := scale.Parse(p.Scale)
		if err != nil {
			return Response{Error: NewInvalidParamsError(err.Error())}
		}
		if err := c.SetScaleType(t); err != nil {
			return Response{Error: engineError(err)}
		}
	}

	reg.mu.Lock()
	reg.nextID++
	id := fmt.Sprintf("cmp-%d", reg.nextID)
	reg.comparisons[id] = c
	reg.mu.Unlock()

	return Response{Result: stateResult(id, c)}
}

func (reg *Registry) handleAction(params json.RawMessage) Response {
	var p ActionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return Response{Error: NewInvalidParamsError(err.Error())}
	}
	c, ok := reg.lookup(p.ID)
	if !ok {
		return Response{Error: NewNoComparisonError(p.ID)}
	}

	if err := dispatch(c, p); err != nil {
		return Response{Error: engineError(err)}
	}
	if c.Done() {
		return reg.resultResponse(p.ID, c)
	}
	return Response{Result: stateResult(p.ID, c)}
}

// dispatch maps an abstract action name onto the engine.
func dispatch(c *engine.Comparison, p ActionParams) error {
	switch p.Action {
	case "chooseA":
		return c.ChooseA()
	case "chooseB":
		return c.ChooseB()
	case "selectGrade":
		return c.SelectGrade(p.Grade)
	case "back":
		return c.Back()
	case "increaseGradations":
		return c.IncreaseGradations()
	case "decreaseGradations":
		return c.DecreaseGradations()
	case "switchObject":
		return c.SwitchObject()
	case "setScaleType":
		t, err := scale.Parse(p.Scale)
		if err != nil {
			return err
		}
		return c.SetScaleType(t)
	case "noPreference":
		return c.NoPreference()
	case "cancel":
		return c.Cancel()
	default:
		return fmt.Errorf("unknown action %q", p.Action)
	}
}

func (reg *Registry) handleState(params json.RawMessage) Response {
	var p HandleParams
	if err := json.Unmarshal(params, &p); err != nil {
		return Response{Error: NewInvalidParamsError(err.Error())}
	}
	c, ok := reg.lookup(p.ID)
	if !ok {
		return Response{Error: NewNoComparisonError(p.ID)}
	}
	return Response{Result: stateResult(p.ID, c)}
}

func (reg *Registry) handleResult(params json.RawMessage) Response {
	var p HandleParams
	if err := json.Unmarshal(params, &p); err != nil {
		return Response{Error: NewInvalidParamsError(err.Error())}
	}
	c, ok := reg.lookup(p.ID)
	if !ok {
		return Response{Error: NewNoComparisonError(p.ID)}
	}
	return reg.resultResponse(p.ID, c)
}

// resultResponse builds the terminal payload and retires the comparison.
func (reg *Registry) resultResponse(id string, c *engine.Comparison) Response {
	result, err := c.Result()
	if err != nil {
		return Response{Error: engineError(err)}
	}
	reg.remove(id)
	return Response{Result: ResultPayload{
		ID:          id,
		Ratio:       result.Ratio,
		Reliability: result.Reliability,
		Scale:       result.Scale.String(),
	}}
}

func (reg *Registry) handleClose(params json.RawMessage) Response {
	var p HandleParams
	if err := json.Unmarshal(params, &p); err != nil {
		return Response{Error: NewInvalidParamsError(err.Error())}
	}
	if _, ok := reg.lookup(p.ID); !ok {
		return Response{Error: NewNoComparisonError(p.ID)}
	}
	reg.remove(p.ID)
	return Response{Result: map[string]bool{"closed": true}}
}

func handleListScales(json.RawMessage) Response {
	infos := make([]ScaleInfo, 0, len(scale.Types))
	for _, t := range scale.Types {
		infos = append(infos, ScaleInfo{Name: t.String(), Description: scale.Describe(t)})
	}
	return Response{Result: ScaleListResult{Scales: infos}}
}

func (reg *Registry) lookup(id string) (*engine.Comparison, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	c, ok := reg.comparisons[id]
	return c, ok
}

func (reg *Registry) remove(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.comparisons, id)
}
