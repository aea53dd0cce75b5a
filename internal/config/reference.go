package config

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

// Reference holds the name/option lists previously hardcoded in the front
// end. Loaded once at startup and injected into the services that validate
// against them.
type Reference struct {
	Drivers        []string `json:"drivers"`
	PaymentMethods []string `json:"payment_methods"`
	UnitColours    []string `json:"unit_colours"`
}

func defaultReference() Reference {
	return Reference{
		Drivers: []string{
			"Ben Scourfiled",
			"Dean Thorne",
			"Thomas Brooks",
			"Billy Smith",
			"Josh Brooks",
			"Thomas Evans",
			"Daniel Palmer",
			"Luke Miller",
			"Jack Walsh",
			"Lee Scourfield",
			"Emergency Driver",
		},
		PaymentMethods: []string{"Cash", "Card", "Invoice"},
		UnitColours:    []string{"Blue", "Pink"},
	}
}

// LoadReference reads the reference tables from path, falling back to the
// built-in defaults when no file is configured or it cannot be parsed.
func LoadReference(path string) Reference {
	ref := defaultReference()
	if path == "" {
		return ref
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("reference file %s not readable, using defaults: %v", path, err)
		return ref
	}
	var loaded Reference
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.Warnf("reference file %s not parsable, using defaults: %v", path, err)
		return ref
	}
	if len(loaded.Drivers) > 0 {
		ref.Drivers = loaded.Drivers
	}
	if len(loaded.PaymentMethods) > 0 {
		ref.PaymentMethods = loaded.PaymentMethods
	}
	if len(loaded.UnitColours) > 0 {
		ref.UnitColours = loaded.UnitColours
	}
	return ref
}

// HasDriver reports whether name is on the roster.
func (r Reference) HasDriver(name string) bool {
	for _, d := range r.Drivers {
		if d == name {
			return true
		}
	}
	return false
}

// HasPaymentMethod reports whether method is an accepted payment method.
func (r Reference) HasPaymentMethod(method string) bool {
	for _, m := range r.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
