package models

// ServiceOption is one entry of the salon's service catalogue.
type ServiceOption struct {
	Value string `json:"value"` // Sent to the backend
	Label string `json:"label"` // Shown in the select
}

// DefaultServiceOptions returns the Natalie Studio catalogue.
func DefaultServiceOptions() []ServiceOption {
	return []ServiceOption{
		{Value: "Tuns", Label: "Tuns"},
		{Value: "Vopsit", Label: "Vopsit"},
		{Value: "Tuns+Vopsit", Label: "Tuns+Vopsit"},
		{Value: "Aranjat", Label: "Aranjat"},
		{Value: "Baleiaj", Label: "Baleiaj"},
		{Value: "Decorolat", Label: "Decolorat"},
		{Value: "Suvite", Label: "Suvite"},
		{Value: "Intretinere", Label: "Intretinere"},
	}
}
