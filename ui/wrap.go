// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ui

import (
	"strings"
)

// WrapText lays out text in lines not wider than width, filling each line
// greedily with whitespace separated words. A word wider than width on its
// own is laid out as a line by itself.
func (u *Ui) WrapText(text string, size float32, width int) (lines []Text) {
	var line strings.Builder
	var last Text

	words := strings.Fields(text)

	for i := 0; i < len(words); {
		if line.Len() > 0 {
			line.WriteByte(' ')
		}

		line.WriteString(words[i])

		t := u.Font.Render(line.String(), size)

		if t.Width() > width {
			line.Reset()

			if last != nil {
				lines = append(lines, last)
				last = nil
				// lay out this word again on a new line
				continue
			}

			lines = append(lines, t)
		} else {
			last = t
		}

		i++
	}

	if last != nil {
		lines = append(lines, last)
	}

	return
}
