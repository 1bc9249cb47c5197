package wordbank

import _ "embed"

//go:embed words.json
var defaultBank []byte
