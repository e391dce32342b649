package models

// RowKind selects the layout a display row is rendered with.
type RowKind string

const (
	RowKindDetails   RowKind = "details"
	RowKindAccessory RowKind = "accessory"
)

// DisplayRow is one formatted line item shown to the user. Rows are
// ordered; insertion order is the render order.
type DisplayRow struct {
	Kind    RowKind `json:"kind"`
	Title   string  `json:"title"`
	Details string  `json:"details,omitempty"`
	Icon    string  `json:"icon,omitempty"`
}

// AccessoryViewModel describes the "send to <name>" accessory widget.
type AccessoryViewModel struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	ActionLabel string `json:"action_label,omitempty"`
	Icon        string `json:"icon,omitempty"`
}
