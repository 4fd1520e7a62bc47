package editor

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasedit/document"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const cloneSuffix = "copy"

// SuggestCloneName proposes an unused name for a copy of the definition
// called name, following its naming style:
//
//	"Pet"       -> "PetCopy", then "PetCopy2", "PetCopy3", ...
//	"pet_owner" -> "pet_owner_copy"
//	"PET_OWNER" -> "PET_OWNER_COPY"
//	"pet-owner" -> "pet-owner-copy"
func SuggestCloneName(defs document.Definitions, name string) document.NewDefinitionName {
	base := name + styledSuffix(name)
	for i := 1; ; i++ {
		candidate := base
		if i > 1 {
			candidate += strconv.Itoa(i)
		}
		if reserved, ok := defs.ReserveName(candidate); ok {
			return reserved
		}
	}
}

func styledSuffix(name string) string {
	upper := cases.Upper(language.Und)
	switch {
	case strings.Contains(name, "_"):
		if name == upper.String(name) {
			return "_" + upper.String(cloneSuffix)
		}
		return "_" + cloneSuffix
	case strings.Contains(name, "-"):
		return "-" + cloneSuffix
	}
	return cases.Title(language.Und).String(cloneSuffix)
}
