// Package ast describes the resolved source tree handed over by the external
// front end (parser + semantic analysis).
//
// Назначение: read-only модель узлов для lowering.
// Не делает: парсинга, разрешения имён, печати типов.
//
// The tree has three layers. Each layer is a closed tagged union: a node
// struct carrying a Kind tag, a source position and a kind-specific payload
// implementing a sealed Data interface. There is exactly one tag per concrete
// node kind, so consumers switch on Kind without any subtype ordering.
// Kinds the front end exports but this package does not model become the
// Unknown tag of their layer with the front-end class name preserved.
package ast
