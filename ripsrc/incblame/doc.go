// Package incblame attributes every line of a file at a given revision to the commit that introduced it. It walks history backwards from the starting revision, diffing the blob of each suspect commit against its parents and passing unexplained line ranges on to the parents until every line is claimed. Create an Engine with an ObjectSource and a DiffOracle and call Run. See tests for examples.
package incblame
