// SPDX-License-Identifier: MIT
package formula

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// formulaGrammar is the participle grammar for one species.
// Examples: "H2O", "Fe2(SO4)3", "K4[Fe(CN)6]", "CuSO4*5H2O", "SO4-2", "e-".
//
//nolint:govet // participle grammar tags are not standard struct tags
type formulaGrammar struct {
	Electron bool          `(  @Electron`
	Terms    []*term       `  | @@+`
	Adducts  []*adduct     `    ( ( "*" | "·" ) @@ )* )`
	Charge   *chargeSuffix `@@?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type term struct {
	Element string   `(  @Element`
	Group   *group   `  | @@ )`
	Count   *float64 `@Number?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type group struct {
	Terms []*term `  "(" @@+ ")" | "[" @@+ "]"`
}

// adduct is a dot-joined part such as the 5H2O of a pentahydrate.
//
//nolint:govet // participle grammar tags are not standard struct tags
type adduct struct {
	Count *float64 `@Number?`
	Terms []*term  `@@+`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chargeSuffix struct {
	Sign  string   `@( "+" | "-" )`
	Value *float64 `@Number?`
}

// formulaLexer tokenizes formulas. Element symbols start with an upper-case
// letter, so the lone lower-case "e" is free for the electron.
var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Electron", Pattern: `e`},
	{Name: "Element", Pattern: `[A-Z][a-z]{0,2}`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Punct", Pattern: `[()\[\]+\-*·]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var formulaParser = participle.MustBuild[formulaGrammar](
	participle.Lexer(formulaLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
