package modules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/y2m/internal/modules"
)

const (
	emptySelectionCaseNameConstant      = "no_arguments"
	allSelectionCaseNameConstant        = "sole_all_keyword"
	favoritesSelectionCaseNameConstant  = "sole_fav_keyword"
	explicitSelectionCaseNameConstant   = "module_names"
	embeddedKeywordCaseNameConstant     = "keyword_among_names_is_a_name"
	lowercaseKeywordCaseNameConstant    = "lowercase_keyword_is_a_name"
)

func TestParseModuleSelection(testInstance *testing.T) {
	testCases := []struct {
		name              string
		arguments         []string
		expectedSelection modules.ModuleSelection
	}{
		{
			name:              emptySelectionCaseNameConstant,
			arguments:         nil,
			expectedSelection: modules.ModuleSelection{Kind: modules.SelectionLocal},
		},
		{
			name:              allSelectionCaseNameConstant,
			arguments:         []string{"ALL"},
			expectedSelection: modules.ModuleSelection{Kind: modules.SelectionAll},
		},
		{
			name:              favoritesSelectionCaseNameConstant,
			arguments:         []string{"FAV"},
			expectedSelection: modules.ModuleSelection{Kind: modules.SelectionFavorites},
		},
		{
			name:              explicitSelectionCaseNameConstant,
			arguments:         []string{"core", "network"},
			expectedSelection: modules.ModuleSelection{Kind: modules.SelectionExplicit, ModuleNames: []string{"core", "network"}},
		},
		{
			name:              embeddedKeywordCaseNameConstant,
			arguments:         []string{"core", "ALL"},
			expectedSelection: modules.ModuleSelection{Kind: modules.SelectionExplicit, ModuleNames: []string{"core", "ALL"}},
		},
		{
			name:              lowercaseKeywordCaseNameConstant,
			arguments:         []string{"all"},
			expectedSelection: modules.ModuleSelection{Kind: modules.SelectionExplicit, ModuleNames: []string{"all"}},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedSelection := modules.ParseModuleSelection(testCase.arguments)

			require.Equal(subtestInstance, testCase.expectedSelection, parsedSelection)
		})
	}
}
