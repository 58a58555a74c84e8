package encode

type EncodeOption func(*EncState)

// EncodeColors colors the output for terminals.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeDiagYAML re-marshals decoded diagnostic blocks instead of
// replaying their raw lines.
func EncodeDiagYAML(v bool) EncodeOption {
	return func(es *EncState) { es.diagYAML = v }
}
