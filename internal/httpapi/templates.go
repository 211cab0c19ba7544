package httpapi

const loginTemplateHTML = `<!doctype html>
<html lang="{{.Locale}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.PageTitle}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
</head>
<body class="bg-body-tertiary d-flex align-items-center" style="min-height:100vh">
  <main class="container" style="max-width:380px">
    <div class="card shadow-sm">
      <div class="card-body">
        <h1 class="h5 mb-3">{{.HeadingLabel}}</h1>
        <form id="{{.LoginFormID}}">
          <div class="mb-3">
            <label class="form-label" for="{{.UsernameInputID}}">{{.UsernameLabel}}</label>
            <input class="form-control" id="{{.UsernameInputID}}" autocomplete="username" required>
          </div>
          <div class="mb-3">
            <label class="form-label" for="{{.PasswordInputID}}">{{.PasswordLabel}}</label>
            <input class="form-control" id="{{.PasswordInputID}}" type="password" autocomplete="current-password" required>
          </div>
          <div id="{{.LoginStatusID}}" class="text-danger small mb-2 d-none"></div>
          <button class="btn btn-primary w-100" type="submit">{{.SubmitLabel}}</button>
        </form>
      </div>
    </div>
  </main>
  <script id="{{.ClientConfigElementID}}" type="application/json">{{.ClientConfigJSON}}</script>
  <script src="/static/login.js"></script>
</body>
</html>`

const shellTemplateHTML = `<!doctype html>
<html lang="{{.Locale}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.PageTitle}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/remixicon@4.2.0/fonts/remixicon.css">
</head>
<body>
  <div class="d-flex">
    <nav id="{{.SidebarElementID}}" class="border-end bg-body-tertiary p-3" style="min-width:220px;min-height:100vh">
      <div class="fw-semibold mb-3">{{.BrandLabel}}</div>
      <ul class="nav nav-pills flex-column gap-1">
        {{range .Navigation}}
        <li class="nav-item">
          <a class="nav-link{{if eq .Page $.ActivePage}} active{{end}}" href="{{.Path}}">
            <i class="{{.IconClass}} me-2"></i>{{.Label}}
          </a>
        </li>
        {{end}}
      </ul>
      <hr>
      <a class="nav-link text-danger" href="{{.LogoutPath}}"><i class="ri-logout-box-line me-2"></i>{{.LogoutLabel}}</a>
    </nav>
    <main id="{{.PageContainerElementID}}" class="flex-grow-1 p-4" data-active-page="{{.ActivePage}}">
      {{if .UnknownPage}}
      <div class="alert alert-warning">{{.UnknownPageMessage}}</div>
      {{end}}
    </main>
  </div>
  <script id="{{.ClientConfigElementID}}" type="application/json">{{.ClientConfigJSON}}</script>
  <script src="/static/app.js"></script>
</body>
</html>`
