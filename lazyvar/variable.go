package lazyvar

// Variable is one in-flight evaluation of a lazy variable. While a definition is being
// evaluated, its Variable sits on top of the evaluation stack of the context suite, which is how
// a definition that reads its own name gets the value of the definition it overrides.
type Variable struct {
	name           string
	context        Suite
	evaluationMeta *Metadata
}

// Evaluate resolves name in the given run-time context. It fails with ErrPrematureEvaluation
// when there is no context, and with ErrUnknownParentVariable when a definition reads its own
// name but no ancestor suite defines it. Panics raised by a definition propagate unchanged.
func (r *Registry) Evaluate(name string, context Suite) (any, error) {
	if context == nil {
		return nil, newError(ErrPrematureEvaluation, name,
			"it looks like you are trying to evaluate %q too early: evaluation context is undefined", name)
	}

	if current := r.fromStack(context); current != nil && r.isSame(current, name) {
		return current.valueInParentContext(name)
	}

	v := r.allocate(name, context)
	defer r.pullFromStack(context)
	return v.value(), nil
}

func (r *Registry) allocate(name string, context Suite) *Variable {
	v := &Variable{name: name, context: context, evaluationMeta: r.Of(context)}
	r.stacks[context] = append(r.stacks[context], v)
	return v
}

func (r *Registry) pullFromStack(context Suite) {
	stack := r.stacks[context]
	stack[len(stack)-1] = nil
	if len(stack) == 1 {
		delete(r.stacks, context)
		return
	}
	r.stacks[context] = stack[:len(stack)-1]
}

func (r *Registry) fromStack(context Suite) *Variable {
	stack := r.stacks[context]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// isSame reports whether name refers to the variable being evaluated, directly or through an
// alias of its definition.
func (r *Registry) isSame(v *Variable, name string) bool {
	if v.name == name {
		return true
	}
	vm := r.VariableOf(v.context, v.name)
	return vm != nil && vm.IsNamedAs(name)
}

// Name returns the name the variable was requested by.
func (v *Variable) Name() string { return v.name }

func (v *Variable) value() any {
	if v.evaluationMeta == nil {
		return nil
	}
	return v.evaluationMeta.GetVar(v.name)
}

func (v *Variable) valueInParentContext(name string) (any, error) {
	meta := v.evaluationMeta
	if meta == nil {
		return nil, nil
	}
	parent, err := meta.LookupMetadataFor(name)
	if err != nil {
		return nil, err
	}
	v.evaluationMeta = parent
	defer func() { v.evaluationMeta = meta }()
	return parent.Evaluate(name), nil
}
