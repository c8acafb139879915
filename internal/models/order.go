package models

// Customization holds the confirmed per-line changes to a menu item.
// Every id refers to an option of the same menu item as the line it is attached to.
type Customization struct {
	ExcludedIngredients []string `json:"excludedIngredients"`
	Preparation         string   `json:"preparation,omitempty"`
	AddOns              []string `json:"addOns"`
	Quantity            int      `json:"quantity"`
	Note                string   `json:"note"`
}

// Clone returns a deep copy so callers cannot mutate a confirmed customization
func (c *Customization) Clone() *Customization {
	if c == nil {
		return nil
	}
	clone := *c
	clone.ExcludedIngredients = append([]string{}, c.ExcludedIngredients...)
	clone.AddOns = append([]string{}, c.AddOns...)
	return &clone
}

// HasAddOn reports whether the add-on was chosen
func (c *Customization) HasAddOn(id string) bool {
	if c == nil {
		return false
	}
	for _, addOnID := range c.AddOns {
		if addOnID == id {
			return true
		}
	}
	return false
}

// OrderLine is a single entry of a customer's order
type OrderLine struct {
	ID            string         `json:"id"`
	Item          MenuItem       `json:"item"`
	Quantity      int            `json:"quantity"`
	Customization *Customization `json:"customization,omitempty"`
}

// Customized reports whether the line carries a customization
func (l OrderLine) Customized() bool {
	return l.Customization != nil
}
