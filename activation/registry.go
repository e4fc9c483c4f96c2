package activation

// Registry maps activation modes to handlers and forwards execution. Modes
// without a dedicated handler fall back to the press family, so dispatch
// always produces a result.
type Registry struct {
	handlers map[Mode]Handler
	fallback Handler
}

// NewRegistry builds the registry with the built-in handler set.
func NewRegistry() *Registry {
	return &Registry{
		handlers: map[Mode]Handler{
			ModeSmartToggle: SmartToggleHandler{},
		},
		fallback: PressHandler{},
	}
}

// Execute dispatches the event to the handler registered for ctx.Mode.
func (r *Registry) Execute(ctx Context, ex Executor) bool {
	h, ok := r.handlers[ctx.Mode]
	if !ok {
		h = r.fallback
	}
	return h.Execute(ctx, ex)
}
