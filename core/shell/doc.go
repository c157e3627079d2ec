// Package shell turns a line of input into pipelines.
//
// Processing follows a much reduced version of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
//
//  1. Parameters of the form $NAME are expanded over the raw line, see Expand.
//     There is no quoting, so expansion can run before tokenizing.
//
//  2. The line is broken into tokens: words and the operators
//     | || < > >> &, see Lex.
//
//  3. Tokens are parsed into pipelines of stages, see Parse. Redirection
//     operators and their operands are removed from the argument list and
//     recorded on the stage they belong to.
//
// Running the pipelines is left to the executor package.
package shell
