/*
Package dsl provides a Go DSL for programmatically writing tutorial scripts.

It lets developers define scripts with a fluent builder instead of YAML or
JSON files, which is handy for generated tutorials and for tests.

Example usage:

	b := dsl.New("hello")

	b.Say("Let's write our first program.").
		CreateFolder("src")

	b.Edit("src/hello.js").
		Type("console.log('Hello, world!');").
		Save().
		Done().
		OpenTerminal().
		ClickTerminal().
		Run("node src/hello.js")

	loader, err := b.Build() // a ports.ScriptLoader serving "hello"
*/
package dsl
