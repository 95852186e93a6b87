/*
Package particle supplies the species-code table the cascade engine and its
collaborators key off of: rest masses, charges, and stability flags for the
stable/long-lived species a shower actually carries on its stack, plus the
generic-nucleus code family. This is data the distilled spec references
("species code") without itself specifying; the concrete hadronic/decay
physics generators that decide *what* a given species does remain out of
scope collaborators (spec section 1), matching
original_source/src/Framework/Particles/ParticleProperties.h.
*/
package particle

import "github.com/corsika-go/gocascade/units"

// Code identifies a particle species. Values before CodeNucleus name a
// fixed table of known species (leptons, photons, pions, kaons, nucleons);
// CodeNucleus marks "this is a generic nucleus, consult the particle's A/Z
// fields", matching the original's particles::Code enum plus
// IsNucleus/GetNucleusA helpers.
type Code int

const (
	Unknown Code = iota
	Electron
	Positron
	ElectronNeutrino
	AntiElectronNeutrino
	MuonMinus
	MuonPlus
	MuonNeutrino
	AntiMuonNeutrino
	TauMinus
	TauPlus
	Photon
	PiPlus
	PiMinus
	PiZero
	KPlus
	KMinus
	KShort
	KLong
	Proton
	AntiProton
	Neutron
	AntiNeutron
	Nitrogen14
	Oxygen16
	CodeNucleus // generic nucleus: consult NucleusA()/NucleusZ() on the owning particle
)

type properties struct {
	name     string
	mass     float64 // kg
	charge   int     // in units of e
	stable   bool
	nucleusA int // 0 for non-nuclei
	nucleusZ int
}

var table = map[Code]properties{
	Unknown:              {name: "unknown"},
	Electron:             {name: "e-", mass: 9.1093837015e-31, charge: -1, stable: true},
	Positron:             {name: "e+", mass: 9.1093837015e-31, charge: +1, stable: true},
	ElectronNeutrino:     {name: "nu_e", stable: true},
	AntiElectronNeutrino: {name: "anti_nu_e", stable: true},
	MuonMinus:            {name: "mu-", mass: 1.883531627e-28, charge: -1, stable: false},
	MuonPlus:             {name: "mu+", mass: 1.883531627e-28, charge: +1, stable: false},
	MuonNeutrino:         {name: "nu_mu", stable: true},
	AntiMuonNeutrino:     {name: "anti_nu_mu", stable: true},
	TauMinus:             {name: "tau-", mass: 3.16754e-27, charge: -1, stable: false},
	TauPlus:              {name: "tau+", mass: 3.16754e-27, charge: +1, stable: false},
	Photon:               {name: "gamma", stable: true},
	PiPlus:               {name: "pi+", mass: 2.488061e-28, charge: +1, stable: false},
	PiMinus:              {name: "pi-", mass: 2.488061e-28, charge: -1, stable: false},
	PiZero:               {name: "pi0", mass: 2.406177e-28, charge: 0, stable: false},
	KPlus:                {name: "K+", mass: 8.80047e-28, charge: +1, stable: false},
	KMinus:               {name: "K-", mass: 8.80047e-28, charge: -1, stable: false},
	KShort:               {name: "K0_S", mass: 8.87256e-28, charge: 0, stable: false},
	KLong:                {name: "K0_L", mass: 8.87256e-28, charge: 0, stable: false},
	Proton:               {name: "p", mass: 1.67262192369e-27, charge: +1, stable: true},
	AntiProton:           {name: "p~", mass: 1.67262192369e-27, charge: -1, stable: true},
	Neutron:              {name: "n", mass: 1.67492749804e-27, charge: 0, stable: false},
	AntiNeutron:          {name: "n~", mass: 1.67492749804e-27, charge: 0, stable: false},
	Nitrogen14:           {name: "N-14", nucleusA: 14, nucleusZ: 7, stable: true},
	Oxygen16:             {name: "O-16", nucleusA: 16, nucleusZ: 8, stable: true},
}

// Name returns the species' display name.
func (c Code) Name() string {
	if p, ok := table[c]; ok {
		return p.name
	}
	return "unknown"
}

// Mass returns the species' rest mass in kilograms. Zero for massless
// species (neutrinos, photons) and for CodeNucleus (use NucleusMass with
// an explicit A instead).
func (c Code) Mass() float64 { return table[c].mass }

// Charge returns the species' charge number (in units of e).
func (c Code) Charge() int { return table[c].charge }

// IsStable reports whether the species has no decay channel modeled here.
func (c Code) IsStable() bool { return table[c].stable }

// IsNucleus reports whether c names a fixed nucleus species (not the
// CodeNucleus placeholder, which requires explicit A/Z).
func (c Code) IsNucleus() bool { return table[c].nucleusA > 0 }

// NucleusA returns the mass number of a fixed nucleus species.
func (c Code) NucleusA() int { return table[c].nucleusA }

// NucleusZ returns the atomic number of a fixed nucleus species.
func (c Code) NucleusZ() int { return table[c].nucleusZ }

// NucleusMass computes the rest mass of a nucleus with mass number a from
// the atomic mass unit, for use with the generic CodeNucleus species.
func NucleusMass(a int) units.Mass {
	return units.Mass(float64(a) * float64(units.AtomicMassUnit))
}
