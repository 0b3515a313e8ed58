package rod

const (
	EntryHTML = `<!DOCTYPE html>
<html>
<head><title>Entry</title></head>
<body>
	<header>
		<a href="/trial">無料で試す</a>
		<a id="login" href="/login">ログインする</a>
	</header>
</body>
</html>`

	LoginHTML = `<!DOCTYPE html>
<html>
<body>
	<form action="/home" method="get">
		<input id="email" name="email" type="email" />
		<input id="password" name="password" type="password" />
	</form>
</body>
</html>`

	HomeHTML = `<!DOCTYPE html>
<html>
<body>
	<div id="global-navigation-body-block">
		<button onclick="location.href='/done?a=in'">出勤</button>
		<button onclick="location.href='/done?a=out'">退勤</button>
	</div>
</body>
</html>`

	DoneHTML = `<!DOCTYPE html>
<html>
<body><p id="done">打刻しました</p></body>
</html>`
)
