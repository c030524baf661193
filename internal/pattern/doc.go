/*
Package pattern implements filename templates used to rewrite a path into its counterpart.

A template is a slash-separated path fragment such as "tests/test_%.py". The "%" placeholder
captures one or more characters of a single path segment. Every further "%" in the same
template must repeat the text captured by the first one, so "%/tests/test_%.py" matches
"pkg/tests/test_pkg.py" but not "pkg/tests/test_other.py".

Templates match as anchored suffixes: the match starts at the beginning of the input or
right after a "/", and always ends at the end of the input. All characters other than "%"
are literal.

Basic flow:
  - compile both sides of a rule once (`Compile`)
  - rewrite a filename in one direction (`Apply`)
  - inspect `Outcome` to tell a missing match from a rejected rewrite
*/
package pattern
