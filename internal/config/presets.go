package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Force: "harmonic", Integrator: "euler_maruyama", Stiffness: 1.0, Gamma: 1.0,
		Temperature: 10.0, Mass: 1.0, Dt: 0.01, Steps: 10000,
	},
	"free": {
		Force: "none", Integrator: "euler_maruyama", Stiffness: 1.0, Gamma: 1.0,
		Temperature: 10.0, Mass: 1.0, Dt: 0.01, Steps: 10000,
	},
	"cold": {
		Force: "harmonic", Integrator: "euler_maruyama", Stiffness: 1.0, Gamma: 1.0,
		Temperature: 0.1, Mass: 1.0, Dt: 0.01, Steps: 10000,
	},
	"hot": {
		Force: "harmonic", Integrator: "euler_maruyama", Stiffness: 1.0, Gamma: 1.0,
		Temperature: 100.0, Mass: 1.0, Dt: 0.01, Steps: 10000,
	},
	"stiff": {
		Force: "harmonic", Integrator: "euler_maruyama", Stiffness: 25.0, Gamma: 1.0,
		Temperature: 10.0, Mass: 1.0, Dt: 0.005, Steps: 20000,
	},
	"overdamped": {
		Force: "harmonic", Integrator: "euler_maruyama", Stiffness: 1.0, Gamma: 20.0,
		Temperature: 10.0, Mass: 1.0, Dt: 0.01, Steps: 10000,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
