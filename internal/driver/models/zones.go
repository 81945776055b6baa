package models

// Zone is a base location a driver can operate from.
type Zone struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// BaseZones is the catalog offered by the registration form. Intake
// only requires a non-empty zone, so the catalog is advisory for
// clients rather than an enforced enum.
var BaseZones = []Zone{
	{Value: "delmas-32", Label: "Delmas 32"},
	{Value: "delmas-60", Label: "Delmas 60"},
	{Value: "petion-ville", Label: "Pétion-Ville"},
	{Value: "nazon", Label: "Nazon"},
	{Value: "clercine", Label: "Clercine"},
	{Value: "carrefour-feuilles", Label: "Carrefour-Feuilles"},
}
