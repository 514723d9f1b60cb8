package chart

// Instruction is one requested overlay: a chart kind, its dataset, axis
// labels, and style overrides. Instructions are immutable once appended
// to a composition; the bucket that holds one owns it exclusively.
type Instruction struct {
	Kind   Kind
	Data   Dataset
	Labels Labels
	Config Config
}

// Validate checks the instruction's kind and labels. Dataset shape is
// deliberately not checked here: shape validation is the renderer's
// responsibility and happens at draw time.
func (in Instruction) Validate() error {
	if _, err := ParseKind(string(in.Kind)); err != nil {
		return err
	}
	return in.Labels.Validate()
}
