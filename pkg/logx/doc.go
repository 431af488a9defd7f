// Package logx configures autoselfcontrol's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//
// The zero Logger is a safe no-op, which lets components accept a logger
// without nil checks.
package logx
