/*
Package tsbind exports TypeScript bindings from a Rust crate using ts-rs (https://github.com/Aleph-Alpha/ts-rs).

It runs the crate's generated export tests through cargo with the requested ts-rs features and can collect everything that was exported into a single index.ts barrel file.

# Architecture pipeline (for developers)

Each element in the pipeline has distinct sub-packages that do a specific part. These are then "glued" together in the [Run] function.
 1. [config]: Parse the optional 'tsbind.toml' file and its imports
 2. [artifact]: Remove a stale 'ts_rs.meta' log left by an earlier run
 3. [invoker]: Build the cargo command line and run it with TS_RS_EXPORT_DIR set
 4. [artifact] and [index]: Read and deduplicate 'ts_rs.meta', write 'index.ts'
 5. [artifact]: Remove 'ts_rs.meta' again, whether or not the earlier steps succeeded
*/
package tsbind
