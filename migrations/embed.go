// Package migrations встраивает SQL миграции в бинарный файл.
package migrations

import "embed"

// Dir - каталог миграций tutorhub внутри FS.
const Dir = "tutorhub"

// FS содержит миграции tutorhub.
//
//go:embed tutorhub/*.sql
var FS embed.FS
