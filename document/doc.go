// Package document provides the hierarchical document model read and written
// by constructor adapters.
//
// A document is a tree of named nodes. Leaf nodes carry a text value, inner
// nodes carry ordered children whose names may repeat. Adapters never see the
// wire format; they walk the tree through a Reader and emit it through a Writer.
//
// # Formats
//
// The same tree can be parsed from and encoded to several formats:
//
//   - XML: elements become nodes, character data becomes the value.
//     Attributes are ignored.
//   - YAML and JSON (JSONC accepted): the root is a mapping with exactly one
//     key naming the root node. Mapping keys become child names in document
//     order. A sequence holds either single-key mappings (a named child each)
//     or plain values (children named "item"). Scalars become text values;
//     null becomes an empty value.
//   - CBOR: a deterministic binary encoding of the node tree itself.
//   - Snapshot: the CBOR form compressed with LZ4 or zstd behind a small
//     header carrying the BLAKE3 digest of the uncompressed bytes, which
//     ParseSnapshot verifies.
//
// Example shape of the same order in XML and YAML:
//
//	<order>
//	  <id>666</id>
//	  <products>
//	    <product><name>first</name></product>
//	  </products>
//	</order>
//
//	order:
//	  id: "666"
//	  products:
//	    - product:
//	        name: first
package document
