package textproc

import "github.com/abadojack/whatlanggo"

// LikelyNonEnglish reports whether the text is confidently written in a
// language other than English. Short or ambiguous inputs pass the gate;
// only a reliable non-English detection rejects.
func LikelyNonEnglish(text string) bool {
	info := whatlanggo.Detect(text)
	return info.Lang != whatlanggo.Eng && info.IsReliable()
}
