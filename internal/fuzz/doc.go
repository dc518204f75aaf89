// Package fuzztests houses Go fuzz harnesses for the lambda front end
// (source -> token stream -> parser). They guard against panics, hangs and
// broken span invariants on arbitrary input.
//
// Назначение: прогонять байты через Source, TokenStream и парсер.
//
// Не делает: запись файлов, выполнение CLI.
package fuzztests
