package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterPages serves the three HTML pages that drive the JSON API.
// Access to /admin and /admin/login is decided by RouteGuard before these run.
func RegisterPages(r gin.IRouter) {
	r.GET("/", page(indexHTML))
	r.GET("/admin", page(adminHTML))
	r.GET("/admin/login", page(loginHTML))
}

func page(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, body)
	}
}

const indexHTML = `<!doctype html>
<html lang="ru">
  <head><meta charset="utf-8" /><title>ВОПРОСЫ</title></head>
  <body>
    <h1>ВОПРОСЫ</h1>
    <form id="ask">
      <textarea id="content" maxlength="1000" rows="5" cols="60"></textarea>
      <div><span id="count">0</span>/1000</div>
      <button type="submit" id="send">ОТПРАВИТЬ</button>
    </form>
    <p id="status"></p>
    <script>
      const content = document.getElementById('content');
      const status = document.getElementById('status');
      const send = document.getElementById('send');
      content.addEventListener('input', () => {
        document.getElementById('count').textContent = content.value.length;
      });
      document.getElementById('ask').addEventListener('submit', async (e) => {
        e.preventDefault();
        if (!content.value.trim()) {
          status.textContent = 'Пожалуйста, введите вопрос';
          return;
        }
        send.disabled = true;
        send.textContent = 'ОТПРАВКА...';
        try {
          const res = await fetch('/api/questions', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ content: content.value }),
          });
          const data = await res.json();
          if (res.ok) {
            content.value = '';
            status.textContent = data.message;
          } else {
            status.textContent = data.error;
          }
        } catch (err) {
          status.textContent = 'Что-то пошло не так. Пожалуйста, попробуйте еще раз.';
        } finally {
          send.disabled = false;
          send.textContent = 'ОТПРАВИТЬ';
        }
      });
    </script>
  </body>
</html>`

const loginHTML = `<!doctype html>
<html lang="ru">
  <head><meta charset="utf-8" /><title>АДМИН</title></head>
  <body>
    <h1>АДМИН</h1>
    <form id="login">
      <input type="password" id="password" autocomplete="current-password" />
      <button type="submit" id="enter">ВОЙТИ</button>
    </form>
    <p id="status"></p>
    <script>
      const status = document.getElementById('status');
      const enter = document.getElementById('enter');
      document.getElementById('login').addEventListener('submit', async (e) => {
        e.preventDefault();
        const password = document.getElementById('password').value;
        if (!password) {
          status.textContent = 'Пароль обязателен';
          return;
        }
        enter.disabled = true;
        enter.textContent = 'ВХОД...';
        try {
          const res = await fetch('/api/admin/login', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ password }),
          });
          if (res.ok) {
            window.location.href = '/admin';
            return;
          }
          status.textContent = 'Неверный пароль. Пожалуйста, попробуйте еще раз.';
        } catch (err) {
          status.textContent = 'Ошибка входа';
        } finally {
          enter.disabled = false;
          enter.textContent = 'ВОЙТИ';
        }
      });
    </script>
  </body>
</html>`

const adminHTML = `<!doctype html>
<html lang="ru">
  <head><meta charset="utf-8" /><title>ПАНЕЛЬ АДМИНИСТРАТОРА</title></head>
  <body>
    <h1>ПАНЕЛЬ АДМИНИСТРАТОРА</h1>
    <button id="logout">ВЫЙТИ</button>
    <nav>
      <button data-filter="">ВСЕ ВОПРОСЫ</button>
      <button data-filter="pending">ОЖИДАЮЩИЕ</button>
      <button data-filter="answered">ОТВЕЧЕННЫЕ</button>
      <button data-filter="archived">АРХИВИРОВАННЫЕ</button>
    </nav>
    <p id="status"></p>
    <ul id="questions"></ul>
    <script>
      const labels = { pending: 'В ожидании', answered: 'Отвечено', archived: 'Архивировано' };
      const list = document.getElementById('questions');
      const status = document.getElementById('status');
      let filter = '';

      async function load() {
        status.textContent = 'Загрузка вопросов...';
        try {
          const res = await fetch('/api/questions' + (filter ? '?status=' + filter : ''));
          if (res.status === 401) {
            window.location.href = '/admin/login';
            return;
          }
          if (!res.ok) {
            status.textContent = 'Не удалось загрузить вопросы';
            return;
          }
          const data = await res.json();
          render(data.questions);
          status.textContent = data.questions.length ? '' : 'Вопросы не найдены';
        } catch (err) {
          status.textContent = 'Ошибка при загрузке вопросов';
        }
      }

      function render(questions) {
        list.innerHTML = '';
        for (const q of questions) {
          const li = document.createElement('li');
          const text = document.createElement('p');
          text.textContent = q.content;
          li.appendChild(text);
          const meta = document.createElement('small');
          meta.textContent = labels[q.status] + ' · ' + new Date(q.created_at).toLocaleString('ru-RU');
          li.appendChild(meta);
          for (const s of ['pending', 'answered', 'archived']) {
            if (s === q.status) continue;
            const b = document.createElement('button');
            b.textContent = labels[s];
            b.onclick = () => update(q.id, s);
            li.appendChild(b);
          }
          const del = document.createElement('button');
          del.textContent = '✕';
          del.onclick = () => remove(q.id);
          li.appendChild(del);
          list.appendChild(li);
        }
      }

      async function update(id, s) {
        const res = await fetch('/api/questions/' + id, {
          method: 'PATCH',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ status: s }),
        });
        if (!res.ok) {
          status.textContent = 'Ошибка при обновлении статуса вопроса';
          return;
        }
        load();
      }

      async function remove(id) {
        if (!confirm('Вы уверены, что хотите удалить этот вопрос?')) return;
        const res = await fetch('/api/questions/' + id, { method: 'DELETE' });
        if (!res.ok) {
          status.textContent = 'Ошибка при удалении вопроса';
          return;
        }
        load();
      }

      document.querySelectorAll('nav button').forEach((b) => {
        b.onclick = () => { filter = b.dataset.filter; load(); };
      });
      document.getElementById('logout').onclick = async () => {
        await fetch('/api/admin/logout', { method: 'POST' });
        window.location.href = '/admin/login';
      };
      load();
    </script>
  </body>
</html>`
