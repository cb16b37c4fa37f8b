// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Debug adds the unique-table access counters (accesses, chain steps, hits,
// misses) to Table.Stats' report. It is off by default and gates nothing
// else: CheckRefcounts and CheckNoOrphans run regardless of it. Verbosity of
// the ordinary event log is controlled independently through zerolog's
// level, not through this flag.
var Debug = false
