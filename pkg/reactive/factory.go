package reactive

import "fmt"

// AutoFactory returns a Factory that annotates every snapshot key with the
// default annotation, then applies overrides on top.
func AutoFactory(overrides Annotations, opts ...Option) Factory {
	cfg := applyOptions(opts)
	return func(snapshot map[string]any) (Store, error) {
		if !cfg.defaultAnnotation.Valid() {
			return nil, fmt.Errorf("%w: default %q", ErrInvalidAnnotation, cfg.defaultAnnotation)
		}
		if err := overrides.validate(); err != nil {
			return nil, err
		}
		annotations := make(Annotations, len(snapshot))
		for key := range snapshot {
			annotations[key] = cfg.defaultAnnotation
		}
		for _, key := range overrides.Keys() {
			if _, ok := snapshot[key]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownAnnotation, key)
			}
			annotations[key] = overrides[key]
		}
		return NewMemoryStore(snapshot, annotations, opts...), nil
	}
}

// ExplicitFactory returns a Factory where only annotated keys participate in
// notification. Snapshot keys without an annotation are stored as Plain.
func ExplicitFactory(annotations Annotations, opts ...Option) Factory {
	return func(snapshot map[string]any) (Store, error) {
		if err := annotations.validate(); err != nil {
			return nil, err
		}
		resolved := make(Annotations, len(snapshot))
		for key := range snapshot {
			annotation, ok := annotations[key]
			if !ok {
				annotation = Plain
			}
			resolved[key] = annotation
		}
		return NewMemoryStore(snapshot, resolved, opts...), nil
	}
}
