package templates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

type keyLocalizer struct{}

func (keyLocalizer) Sprintf(ref message.Reference, args ...any) string {
	key, _ := ref.(string)
	if len(args) == 0 {
		return "[" + key + "]"
	}
	return fmt.Sprintf("[%s %v]", key, args)
}

func render(t *testing.T, ctx context.Context, component templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestLayoutWrapsChildrenAndToast(t *testing.T) {
	t.Parallel()

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>body</p>")
		return err
	})
	ctx := templ.WithChildren(context.Background(), body)
	got := render(t, ctx, Layout(LayoutOptions{
		Title:    "Sign in",
		Lang:     "ko-KR",
		Loc:      keyLocalizer{},
		Toast:    &Toast{Kind: "success", Message: "<done>"},
		SignedIn: true,
	}))

	for _, want := range []string{
		`<html lang="ko-KR">`,
		"<main><p>body</p></main>",
		`class="toast toast-success"`,
		"&lt;done&gt;",
		`action="/logout"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("layout missing %q in %s", want, got)
		}
	}
}

func TestLayoutOmitsSignOutForVisitors(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), Layout(LayoutOptions{Loc: keyLocalizer{}}))
	if strings.Contains(got, "/logout") {
		t.Fatalf("visitor layout renders sign out: %s", got)
	}
	if !strings.Contains(got, `lang="en-US"`) {
		t.Fatalf("layout missing default lang: %s", got)
	}
}

func TestVerifyFailUsesReasonCopy(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), VerifyFail(keyLocalizer{}, "expired"))
	if !strings.Contains(got, "[verify.fail.reason.expired]") {
		t.Fatalf("fail page missing reason copy: %s", got)
	}
	if !strings.Contains(got, `data-reason="expired"`) {
		t.Fatalf("fail page missing reason marker: %s", got)
	}
}

func TestVerifySuccessEscapesContinueLink(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), VerifySuccess(keyLocalizer{}, "/login?token=a&verified=success"))
	if !strings.Contains(got, `href="/login?token=a&amp;verified=success"`) {
		t.Fatalf("continue link not escaped: %s", got)
	}
}

func TestLoginShowsBannerAndError(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), Login(keyLocalizer{}, LoginView{
		Email:    "a@b.c",
		Next:     "/orgs/1/projects",
		Verified: true,
		ErrorKey: "login.error.invalid",
	}))
	for _, want := range []string{"[login.verified_banner]", "[login.error.invalid]", `name="next" value="/orgs/1/projects"`, `value="a@b.c"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("login missing %q in %s", want, got)
		}
	}
}

func TestSignupSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		view SignupView
		want string
		deny string
	}{
		{name: "request", view: SignupView{}, want: `action="/signup/email"`, deny: "/signup/cancel"},
		{name: "waiting", view: SignupView{Email: "a@b.c"}, want: "[signup.sent [a@b.c]]", deny: `name="password"`},
		{name: "verified", view: SignupView{Email: "a@b.c", Verified: true}, want: `name="password"`, deny: "/signup/email"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, context.Background(), Signup(keyLocalizer{}, tc.view))
			if !strings.Contains(got, tc.want) {
				t.Fatalf("signup missing %q in %s", tc.want, got)
			}
			if strings.Contains(got, tc.deny) {
				t.Fatalf("signup unexpectedly contains %q in %s", tc.deny, got)
			}
		})
	}
}

func TestErrorStateByStatus(t *testing.T) {
	t.Parallel()

	if got := render(t, context.Background(), ErrorState(keyLocalizer{}, http.StatusNotFound)); !strings.Contains(got, "[error.not_found.heading]") {
		t.Fatalf("404 page = %s", got)
	}
	if got := render(t, context.Background(), ErrorState(keyLocalizer{}, http.StatusBadGateway)); !strings.Contains(got, "[error.server.heading]") {
		t.Fatalf("502 page = %s", got)
	}
}

func TestTWithoutLocalizer(t *testing.T) {
	t.Parallel()

	if got := T(nil, "orgs %d", 3); got != "orgs 3" {
		t.Fatalf("T() = %q", got)
	}
}
