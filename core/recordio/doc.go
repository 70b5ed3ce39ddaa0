// Package recordio reads and writes delimiter-separated record files.
//
// Lines hold one record each, there is no header row, and the delimiter is
// never quoted or escaped. Blank lines are skipped on read but still counted
// so that line numbers reported to users match the file.
//
// # Atomic output
//
// AtomicFile writes into a temporary file created in the destination
// directory and renames it over the destination on Commit. A failed run
// calls Abort and leaves no partial output behind.
//
// # Usage
//
//	r := recordio.NewReader(f, ",")
//	for {
//	    fields, line, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
//	out, err := recordio.CreateAtomic("reconciled.csv", ",")
//	defer out.Abort()
//	_ = out.Write([]string{"k1", "a", "(f2)"})
//	err = out.Commit()
package recordio
