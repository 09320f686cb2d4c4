package i18n

import "golang.org/x/text/message"

func init() {
	lang := Korean

	message.SetString(lang, "app.name", "OURHOUR")
	message.SetString(lang, "app.title", "%s | OURHOUR")

	// Verification
	message.SetString(lang, "verify.title", "인증")
	message.SetString(lang, "verify.success.heading", "인증이 완료되었습니다")
	message.SetString(lang, "verify.success.body", "링크가 확인되었습니다.")
	message.SetString(lang, "verify.redirecting", "잠시 후 다음 단계로 이동합니다…")
	message.SetString(lang, "verify.continue", "계속")
	message.SetString(lang, "verify.fail.heading", "링크를 인증할 수 없습니다")
	message.SetString(lang, "verify.fail.reason.expired", "링크가 만료되었습니다. 새 링크를 요청해 주세요.")
	message.SetString(lang, "verify.fail.reason.invalid", "유효하지 않은 링크입니다.")
	message.SetString(lang, "verify.fail.reason.already", "이미 사용된 링크입니다.")
	message.SetString(lang, "verify.fail.reason.email_mismatch", "다른 이메일 주소로 보낸 초대입니다.")
	message.SetString(lang, "verify.fail.reason.not_verified", "초대를 수락하기 전에 이메일을 인증해 주세요.")
	message.SetString(lang, "verify.fail.reason.server", "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해 주세요.")
	message.SetString(lang, "verify.fail.back_to_login", "로그인으로 돌아가기")
	message.SetString(lang, "verify.notice.email.success", "이메일 인증이 완료되었습니다.")
	message.SetString(lang, "verify.notice.password_reset.success", "비밀번호 재설정 링크가 확인되었습니다.")
	message.SetString(lang, "verify.notice.invitation.success", "초대가 확인되었습니다. 로그인하면 참여됩니다.")
	message.SetString(lang, "verify.notice.invitation.accepted", "조직에 참여했습니다.")
	message.SetString(lang, "verify.notice.invitation.accept_failed", "초대를 수락하지 못했습니다.")

	// Login
	message.SetString(lang, "login.title", "로그인")
	message.SetString(lang, "login.email", "이메일")
	message.SetString(lang, "login.password", "비밀번호")
	message.SetString(lang, "login.submit", "로그인")
	message.SetString(lang, "login.signup_link", "회원가입")
	message.SetString(lang, "login.verified_banner", "초대가 확인되었습니다. 로그인하면 조직에 참여합니다.")
	message.SetString(lang, "login.error.invalid", "이메일 또는 비밀번호가 올바르지 않습니다.")
	message.SetString(lang, "login.error.required", "이메일과 비밀번호를 입력해 주세요.")
	message.SetString(lang, "login.error.unavailable", "지금은 로그인할 수 없습니다.")
	message.SetString(lang, "auth.notice.signed_out", "로그아웃되었습니다.")
	message.SetString(lang, "auth.sign_out", "로그아웃")

	// Signup
	message.SetString(lang, "signup.title", "계정 만들기")
	message.SetString(lang, "signup.email", "이메일")
	message.SetString(lang, "signup.send", "인증 메일 보내기")
	message.SetString(lang, "signup.sent", "%s 주소로 인증 링크를 보냈습니다.")
	message.SetString(lang, "signup.verified", "%s 인증이 완료되었습니다. 가입을 마무리해 주세요.")
	message.SetString(lang, "signup.name", "이름")
	message.SetString(lang, "signup.password", "비밀번호")
	message.SetString(lang, "signup.submit", "가입하기")
	message.SetString(lang, "signup.cancel", "처음부터 다시")
	message.SetString(lang, "signup.notice.created", "계정이 만들어졌습니다. 로그인해 주세요.")
	message.SetString(lang, "signup.notice.send_failed", "인증 메일을 보내지 못했습니다.")
	message.SetString(lang, "signup.notice.failed", "계정을 만들지 못했습니다.")
	message.SetString(lang, "signup.notice.cancelled", "가입이 취소되었습니다.")
	message.SetString(lang, "signup.error.email_required", "이메일을 입력해 주세요.")
	message.SetString(lang, "signup.error.not_verified", "가입하려면 먼저 이메일을 인증해 주세요.")
	message.SetString(lang, "signup.error.fields_required", "이름과 비밀번호를 입력해 주세요.")

	// Password reset
	message.SetString(lang, "password.reset.title", "비밀번호 재설정")
	message.SetString(lang, "password.reset.body", "재설정 링크가 확인되었습니다. 새 비밀번호를 정해 주세요.")
	message.SetString(lang, "password.reset.missing_token", "재설정 링크가 필요합니다.")

	// Home
	message.SetString(lang, "home.title", "홈")
	message.SetString(lang, "home.body", "로그인되었습니다.")

	// Organizations
	message.SetString(lang, "orgs.projects.title", "프로젝트")
	message.SetString(lang, "orgs.projects.body", "조직 %d의 프로젝트입니다.")

	// Errors
	message.SetString(lang, "error.title", "오류")
	message.SetString(lang, "error.not_found.heading", "페이지를 찾을 수 없습니다")
	message.SetString(lang, "error.not_found.body", "요청한 페이지가 존재하지 않습니다.")
	message.SetString(lang, "error.server.heading", "문제가 발생했습니다")
	message.SetString(lang, "error.server.body", "잠시 후 다시 시도해 주세요.")
	message.SetString(lang, "error.back_home", "홈으로")
	message.SetString(lang, "error.rate_limited", "시도가 너무 많습니다. 잠시 후 다시 시도해 주세요.")
}
