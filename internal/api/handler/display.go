package handler

import (
	"encoding/json"

	"github.com/msto63/relativity/internal/display"
)

// ValueRequest carries a single decimal. The display options of Options
// apply to format.
type ValueRequest struct {
	Options
	Value json.Number `json:"value"`
}

func format(c *call, req ValueRequest) (any, error) {
	v, err := c.engine.Ensure(num(req.Value))
	if err != nil {
		return nil, err
	}
	r := c.format
	r.Value = v
	s, err := display.Format(r)
	if err != nil {
		return nil, err
	}
	fixed, err := display.FormatFixed(v, r.Places)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"value":     v.Text('f'),
		"formatted": s,
		"fixed":     fixed,
	}, nil
}

func mass(c *call, req ValueRequest) (any, error) {
	m, err := c.engine.Ensure(num(req.Value))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"value":      m.Text('f'),
		"formatted":  display.FormatMassWithUnit(m),
		"scientific": display.Scientific(m),
	}, nil
}
