// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package puzzle holds the data model shared by the search engine, the input
// sources and the renderers.
//
// # Core Concepts
//
//   - Grid: the immutable N×N letter matrix. Construction is the only place the
//     square-shape contract is checked; everything downstream assumes it.
//
//   - Coord: a 0-indexed (row, column) pair.
//
//   - FindResult: the outcome for one word. Either not found, or the ordered
//     coordinates of its letters from first to last, plus the Direction the
//     letters run in.
//
//   - SolvedSet: the caller-owned accumulator of every coordinate that belongs
//     to a found word. It only decides how a cell is drawn, it never blocks a
//     later match from reusing a cell.
//
//   - Solution: a grid together with its results and solved set, which is what
//     renderers, exporters and publishers consume.
package puzzle
