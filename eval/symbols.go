package eval

// The predicates below expose the evaluator's symbol tables read-only, so
// that tooling (lint, fmt) can classify a script's names the same way
// evaluation does without re-evaluating it.

// IsKnownBlock reports whether name identifies a block construct (CSG,
// primitive, sweep, path-producing, or an annotation/text block).
func IsKnownBlock(name string) bool {
	return isBlockName(name)
}

// IsKnownCommand reports whether name is a recognized command.
func IsKnownCommand(name string) bool {
	_, ok := commands[name]
	return ok
}

// IsKnownFunction reports whether name is a recognized standard-library
// function or nullary builtin (e.g. `rnd`, `pi`).
func IsKnownFunction(name string) bool {
	_, ok := standardLibrary[name]
	return ok
}

// IsKnownConstant reports whether name is a nullary constant symbol.
func IsKnownConstant(name string) bool {
	_, ok := constants[name]
	return ok
}
