package domain

// Persona is an opaque label drawn from the fixed catalog. It carries no
// structured attributes; the label itself is what prompt building uses.
type Persona string

// Catalog returns the selectable client profiles, in display order.
func Catalog() []Persona {
	return []Persona{
		"Fonctionnaire de l'État (Kinshasa) - Stress administratif",
		"Entrepreneur (Goma) - Conflit d'associés",
		"Entrepreneur local (Lubumbashi)",
		"Couple de la diaspora (Belgique) - Éducation des enfants",
		"Professionnel en reconversion (Diaspora USA)",
		"Chômeur (Lubumbashi) - Perte de motivation",
	}
}

// Lookup reports whether the label belongs to the catalog.
func Lookup(label string) (Persona, bool) {
	for _, p := range Catalog() {
		if string(p) == label {
			return p, true
		}
	}
	return "", false
}
