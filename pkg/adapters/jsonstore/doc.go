// Package jsonstore persists the knowledge base as a directory of JSON
// collection files, one per record type. Every write is atomic (temp
// file + rename) and an optional watcher reloads collections rewritten
// by other processes.
package jsonstore
