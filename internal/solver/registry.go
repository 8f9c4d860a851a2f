package solver

// Registry holds the total, deterministic trial order of the catalog.
// Dispatch is first-match-wins over this order, so placement is a
// correctness contract, not a style choice: named reactions and chemical
// tests come first, broad addition fallbacks last, and within a family the
// rules whose questions embed a broader rule's cues (Sandmeyer before
// diazotization, acylation before alkylation) sit above it.
type Registry struct {
	ordered []Solver
	byName  map[string]Solver
}

// NewRegistry builds the registry with the fixed priority table.
func NewRegistry() *Registry {
	ordered := []Solver{
		// Diazonium family: consumers before the formation rule.
		sandmeyerSolver{},
		azoCouplingSolver{},
		diazotizationSolver{},
		hofmannBromamideSolver{},
		gabrielSolver{},
		carbylamineSolver{},
		hinsbergSolver{},
		benzyneSolver{},

		// Arenes: named formylations before the Friedel-Crafts pair,
		// acylation before alkylation.
		etardSolver{},
		gattermannKochSolver{},
		reimerTiemannSolver{},
		kolbeSolver{},
		friedelCraftsAcylationSolver{},
		friedelCraftsAlkylationSolver{},
		nitrationSolver{},
		sulfonationSolver{},

		// Chemical tests before transformations that share their reagents.
		lucasSolver{},
		iodoformSolver{},
		tollensSolver{},
		fehlingSolver{},

		// Carbonyl transformations.
		cannizzaroSolver{},
		baeyerVilligerSolver{},
		clemmensenSolver{},
		wolffKishnerSolver{},
		rosenmundSolver{},
		stephenSolver{},
		kucherovSolver{},
		grignardSolver{},
		aldolSolver{},

		// Carboxylic acids.
		hvzSolver{},
		decarboxylationSolver{},
		esterificationSolver{},
		saponificationSolver{},

		// Haloalkanes.
		williamsonSolver{},
		finkelsteinSolver{},
		swartsSolver{},
		wurtzSolver{},

		// Alkenes/alkynes: the broad addition fallbacks close the table.
		ozonolysisSolver{},
		hydroborationSolver{},
		lindlarBirchSolver{},
		alkeneHalogenationSolver{},
		markovnikovSolver{},
	}

	byName := make(map[string]Solver, len(ordered))
	for _, s := range ordered {
		byName[s.Name()] = s
	}
	return &Registry{ordered: ordered, byName: byName}
}

// Ordered returns the trial order. The returned slice is a copy; callers
// cannot reorder the registry through it.
func (r *Registry) Ordered() []Solver {
	return append([]Solver(nil), r.ordered...)
}

// Lookup returns the solver registered under name, or nil.
func (r *Registry) Lookup(name string) Solver {
	return r.byName[name]
}

// Len returns the number of registered solvers.
func (r *Registry) Len() int { return len(r.ordered) }
