// Package plotnik decodes Plotnik vowel token files into flat records.
//
// A token file starts with two header lines, a speaker line with seven
// demographic fields and a line whose first field is the number of data
// lines, followed by one line per measured vowel token:
//
//	F1,F2,F3,<vclass>.<envcode>,<stress>.<duration>,WORD ... [<trajectory>]
//
// The vowel column packs the vowel class and a five-digit environment code
// (manner, place, voice, preceding segment, following sequence); the stress
// column packs stress and duration. Files written by newer FAVE versions end
// each line with ten trajectory measurements in angle brackets.
//
// # Decoding
//
//	tokens, err := plotnik.Decode(file, plotnik.SubjectFromPath(path), false)
//	if err != nil {
//	    // errors.Is(err, plotnik.ErrTruncatedFile), ...
//	}
//
// # Writing CSV
//
//	w, _ := plotnik.NewWriter(os.Stdout, plotnik.DefaultWriterOptions())
//	w.WriteHeader()
//	w.WriteAll(tokens)
//	w.Flush()
//
// The lookup tables are package-private and never modified; every function
// in this package is safe for concurrent use. Decoder and Writer values are not.
package plotnik
