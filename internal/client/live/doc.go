// Package live keeps observable queries over the object store.
//
// A Hub holds every open query. The store's writer calls Publish after each
// committed transaction with the buckets the transaction touched; each query
// on those buckets re-reads its rows, diffs them against the previous result
// and emits only when something was inserted, modified or deleted. Clear
// makes every query emit its empty value, and is called by the store before
// it wipes data.
//
// Delivery is conflating: a subscriber that falls behind sees only the most
// recent value, and the writer never blocks on a slow reader.
package live
