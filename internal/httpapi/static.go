package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const javascriptContentType = "application/javascript; charset=utf-8"

// StaticHandlers serves the browser-side bootstrap scripts for the login page
// and the application shell.
type StaticHandlers struct{}

// NewStaticHandlers builds the static asset handler set.
func NewStaticHandlers() *StaticHandlers {
	return &StaticHandlers{}
}

// LoginJS serves the login form script.
func (handlers *StaticHandlers) LoginJS(context *gin.Context) {
	context.Data(http.StatusOK, javascriptContentType, []byte(loginJavaScriptSource))
}

// AppJS serves the application shell script.
func (handlers *StaticHandlers) AppJS(context *gin.Context) {
	context.Data(http.StatusOK, javascriptContentType, []byte(appJavaScriptSource))
}

const loginJavaScriptSource = `(function () {
  var config = JSON.parse(document.getElementById('client-config').textContent);
  var form = document.getElementById(config.element_ids.loginForm);
  var statusBox = document.getElementById(config.element_ids.loginStatus);
  form.addEventListener('submit', function (event) {
    event.preventDefault();
    statusBox.classList.add('d-none');
    var body = {
      username: document.getElementById(config.element_ids.username).value,
      password: document.getElementById(config.element_ids.password).value
    };
    fetch(config.api_paths.session, {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body)
    }).then(function (response) {
      if (response.ok) {
        window.location.href = '/app/dashboard';
        return;
      }
      statusBox.textContent = config.translations.loginFailed || 'Login failed';
      statusBox.classList.remove('d-none');
    }).catch(function () {
      statusBox.textContent = config.translations.loginFailed || 'Login failed';
      statusBox.classList.remove('d-none');
    });
  });
})();`

const appJavaScriptSource = `(function () {
  var config = JSON.parse(document.getElementById('client-config').textContent);
  var container = document.getElementById(config.element_ids.pageContainer);

  function t(key) { return config.translations[key] || key; }

  function postJSON(path, body) {
    return fetch(path, {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body || {})
    }).then(function (response) {
      if (!response.ok) { throw new Error('request_failed'); }
      return response.json();
    });
  }

  function renderTable(columns, rows, rowMeta) {
    var table = document.createElement('table');
    table.className = 'table table-sm table-striped';
    var head = table.createTHead().insertRow();
    columns.forEach(function (column) {
      var cell = document.createElement('th');
      cell.textContent = column;
      head.appendChild(cell);
    });
    var body = table.createTBody();
    rows.forEach(function (row, rowIndex) {
      var tableRow = body.insertRow();
      if (rowMeta && rowMeta[rowIndex]) {
        tableRow.dataset.recordId = rowMeta[rowIndex].id;
        if (rowMeta[rowIndex].imageURL) {
          tableRow.dataset.imageUrl = rowMeta[rowIndex].imageURL;
        }
      }
      columns.forEach(function (column) {
        var value = row[column];
        tableRow.insertCell().textContent = value == null ? '' : String(value);
      });
    });
    container.appendChild(table);
  }

  function loadMasterDB() {
    postJSON(config.api_paths.masterList).then(function (payload) {
      renderTable(payload.columns, payload.rows, payload.rowMeta);
    }).catch(function () { container.textContent = t('loadFailed'); });
  }

  function loadSubmittedDB() {
    postJSON(config.api_paths.logsList, { page: 1 }).then(function (payload) {
      renderTable(payload.columns, payload.rows);
    }).catch(function () { container.textContent = t('loadFailed'); });
  }

  function loadUsers() {
    postJSON(config.api_paths.usersList).then(function (payload) {
      renderTable(['username', 'firstName', 'lastName', 'email', 'role'], payload.users);
    }).catch(function () { container.textContent = t('loadFailed'); });
  }

  function loadDashboard() {
    postJSON(config.api_paths.dashboardOverview).then(function (payload) {
      var heading = document.createElement('h2');
      heading.className = 'h5 mb-3';
      heading.textContent = payload.date;
      container.appendChild(heading);
      if (payload.contextFieldsRequired) {
        var notice = document.createElement('div');
        notice.className = 'alert alert-info';
        notice.textContent = payload.message || t('contextFieldsMissing');
        container.appendChild(notice);
      }
      renderTable(['title', 'totalCount', 'errorCount', 'errorRate', 'badge'], payload.devices);
    }).catch(function () { container.textContent = t('loadFailed'); });
  }

  switch (config.active_page) {
    case 'masterDB': loadMasterDB(); break;
    case 'submittedDB': loadSubmittedDB(); break;
    case 'userManagement': loadUsers(); break;
    case 'dashboard': loadDashboard(); break;
  }
})();`
