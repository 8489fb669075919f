// Package serialization stores parameter vectors in the .born v2 format.
//
//	Format Structure (v2):
//	  [0x00-0x03: Magic "BORN"]
//	  [0x04-0x07: Version (uint32 LE, 2)]
//	  [0x08-0x0B: Flags (uint32 LE)]
//	  [0x0C-0x0F: Reserved]
//	  [0x10-0x17: Header Size (uint64 LE)]
//	  [0x18-0x1F: Data Size (uint64 LE)]
//	  [0x20-0x3F: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Padding to a 64-byte boundary]
//	  [Data: float64 LE values in parameter packing order]
//
// The JSON header records the parameter layout (network shape when there is
// one) and, for checkpoints, the optimizer name, its hyperparameters, the
// number of completed iterations and the last loss.
//
// Example usage:
//
//	ck := serialization.NewCheckpoint(res, rule)
//	ck.Shape = shape
//	if err := serialization.WriteFile("fit.born", ck); err != nil {
//	    log.Fatal(err)
//	}
//
//	ck, err := serialization.ReadFile("fit.born")
package serialization
