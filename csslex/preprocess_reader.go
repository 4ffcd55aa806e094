package csslex

import (
	"io"

	"golang.org/x/text/transform"
)

// NewPreprocessingReader wraps r so that reading from it yields the same
// bytes Preprocess(string(allOfR)) would produce, without first buffering
// the whole input: CR, CRLF and form-feed become LF, and NUL becomes
// U+FFFD, one transform.Transformer pass at a time. This is useful when the
// input is large enough that deferring preprocessing until after a full
// read is wasteful; callers who already have the whole input in memory
// should just call Preprocess directly.
func NewPreprocessingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, new(newlineNormalizer))
}

// newlineNormalizer is a transform.Transformer performing the same
// normalization as Preprocess, adapted to a streaming chunked interface:
// prev tracks the last input byte seen so a CRLF pair isn't reported as two
// line breaks when the CR and LF land in different chunks.
type newlineNormalizer struct {
	prev byte
}

func (n *newlineNormalizer) Reset() { n.prev = 0 }

func (n *newlineNormalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		switch c {
		case '\r':
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst++
		case '\n':
			if n.prev == '\r' {
				// Second half of a CRLF pair already emitted as the '\r' case.
				n.prev = c
				nSrc++
				continue
			}
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst++
		case '\f':
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst++
		case 0:
			if nDst+len(replacementCharacterUTF8) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], replacementCharacterUTF8)
		default:
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
		}
		n.prev = c
		nSrc++
	}
	return nDst, nSrc, nil
}
