package main

import _ "embed"

//go:embed frontend/index.html
var frontendPage []byte
