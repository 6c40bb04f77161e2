package mailer

import (
	"strings"
	"testing"
)

func testData() ContactData {
	return ContactData{
		FullName: "Eric <Habimana>",
		Email:    "eric@example.com",
		Phone:    "+250788000111",
		Message:  "First line\nSecond line & more",
	}
}

func TestTextBody(t *testing.T) {
	body := textBody(testData())

	for _, want := range []string{
		"Name: Eric <Habimana>",
		"Email: eric@example.com",
		"Phone: +250788000111",
		"First line\nSecond line & more",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected text body to contain %q", want)
		}
	}
}

func TestHTMLBody_EscapesAndBreaks(t *testing.T) {
	body := htmlBody(testData())

	if strings.Contains(body, "<Habimana>") {
		t.Error("expected angle brackets to be escaped")
	}
	if !strings.Contains(body, "Eric &lt;Habimana&gt;") {
		t.Error("expected escaped name in HTML body")
	}
	if !strings.Contains(body, "First line<br>Second line &amp; more") {
		t.Error("expected newlines converted to <br> after escaping")
	}
	if !strings.Contains(body, `href="mailto:eric@example.com"`) {
		t.Error("expected mailto link")
	}
}
