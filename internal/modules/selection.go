package modules

// SelectionKind classifies how a command invocation names its module set.
type SelectionKind string

// Module set selection kinds.
const (
	SelectionAll       SelectionKind = SelectionKind("all")
	SelectionFavorites SelectionKind = SelectionKind("favorites")
	SelectionExplicit  SelectionKind = SelectionKind("explicit")
	SelectionLocal     SelectionKind = SelectionKind("local")
)

const (
	allKeywordConstant       = "ALL"
	favoritesKeywordConstant = "FAV"
)

// ModuleSelection captures the module set named on the command line.
type ModuleSelection struct {
	Kind        SelectionKind
	ModuleNames []string
}

// ParseModuleSelection interprets positional arguments as a module set. The
// ALL and FAV keywords are recognized only when they stand alone; in any
// other position they are treated as ordinary module names.
func ParseModuleSelection(arguments []string) ModuleSelection {
	if len(arguments) == 0 {
		return ModuleSelection{Kind: SelectionLocal}
	}
	if len(arguments) == 1 {
		switch arguments[0] {
		case allKeywordConstant:
			return ModuleSelection{Kind: SelectionAll}
		case favoritesKeywordConstant:
			return ModuleSelection{Kind: SelectionFavorites}
		}
	}
	return ModuleSelection{Kind: SelectionExplicit, ModuleNames: append([]string{}, arguments...)}
}
