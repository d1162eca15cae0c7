// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"strings"

	sortedjsondiff "github.com/eric-lim-idexx/sorted-json-diff"
)

var banner = LightBlue(Banner)

func PrintBanner() {
	fmt.Println(strings.Replace(banner, "version", sortedjsondiff.Version, 1))
}

func Success(msg string) {
	fmt.Print(Green(fmt.Sprintf("%s\n", msg)))
}

func Warning(msg string) {
	fmt.Print(Gold(fmt.Sprintf("Warning: %s\n", msg)))
}

func Error(msg string) {
	fmt.Print(Red(fmt.Sprintf("Error: %s\n", msg)))
}

func DefaultLinks() string {
	return Links("Docs", "")
}

func Links(docLinkName string, deepLinkName string) string {
	deepLink := DocRoot
	if deepLinkName != "" {
		deepLink += "#" + deepLinkName
	}

	return "\n" + Gold("Code: ") + sortedjsondiff.Repository +
		"\n" + Gold(fmt.Sprintf("%s: ", docLinkName)) + deepLink +
		"\n" + Gold("Bugs: ") + sortedjsondiff.Repository + "/issues"
}
