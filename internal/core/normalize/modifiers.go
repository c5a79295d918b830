package normalize

// FlatModifier is one node of a product's modifier tree, flattened
type FlatModifier struct {
	ID       string
	ParentID string // empty for top-level modifiers
	Name     string
	Amount   float64
}

type modFrame struct {
	node     map[string]any
	parentID string
}

// FlattenModifiers walks a vendor modifier tree into pre-order document
// order. A node without a "modifier" id is dropped together with its whole
// subtree: without the id its children cannot be parented.
func FlattenModifiers(v any) []FlatModifier {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil
	}

	var out []FlatModifier
	stack := make([]modFrame, 0, len(list))

	// seed in reverse so the stack pops in document order
	for i := len(list) - 1; i >= 0; i-- {
		if node, ok := list[i].(map[string]any); ok {
			stack = append(stack, modFrame{node: node})
		}
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idv, _ := SafeGet(fr.node, "modifier")
		id, ok := CompositeID(idv)
		if !ok || id == "" {
			continue // id-less subtree dropped wholesale
		}

		fm := FlatModifier{ID: id, ParentID: fr.parentID}
		if s, ok := fr.node["name"].(string); ok {
			fm.Name = Text(s)
		}
		if n, ok := Numeric(fr.node["amount"]); ok {
			fm.Amount = n
		}
		out = append(out, fm)

		children, _ := fr.node["childModifiers"].([]any)
		for i := len(children) - 1; i >= 0; i-- {
			if child, ok := children[i].(map[string]any); ok {
				stack = append(stack, modFrame{node: child, parentID: id})
			}
		}
	}

	return out
}
