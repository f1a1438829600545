package index

import "errors"

// ErrVariableNotInPartition means a partition's resolved Collection has
// no group/variable matching the VarKey a VariableIndexPartitioned was
// built with -- an index-corrupt condition the caller maps to
// api.KindIndexCorrupt.
var ErrVariableNotInPartition = errors.New("index: variable not present in resolved partition")
