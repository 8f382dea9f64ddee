// Package tokfile reads and writes token dumps: the token streams an external
// PHP tokenizer produced for one source file.
//
// Two encodings are supported:
//
//   - JSON (*.tokens.json). Either an object
//     {"path": "...", "tokens": [{"kind": "T_STRING", "content": "get", "line": 3}]}
//     or the bare array PHP's token_get_all returns once token ids are mapped
//     through token_name: elements are either a single-character string or
//     [name, content, line].
//   - msgpack (*.tokmp), the object form encoded with vmihailenco/msgpack.
//
// Writing always produces the object form. Columns missing from the input are
// recomputed from token contents.
package tokfile
