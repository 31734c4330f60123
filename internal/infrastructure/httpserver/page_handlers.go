package httpserver

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// indexTemplate is the single-page posting UI. It talks to the JSON API, so
// the page itself carries no server-side post data.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Fedipost</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 720px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; border-radius: 12px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { text-align: center; color: #333; }
        .post-form { background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
        label { display: block; margin-bottom: 5px; font-weight: 600; color: #555; }
        input, textarea { width: 100%; padding: 10px; border: 1px solid #ddd; border-radius: 6px; box-sizing: border-box; margin-bottom: 12px; }
        button { background: #007bff; color: white; border: none; padding: 10px 22px; border-radius: 6px; cursor: pointer; }
        .post { border: 1px solid #e9ecef; border-radius: 8px; padding: 16px; margin-bottom: 12px; }
        .username { font-weight: 600; color: #007bff; }
        .timestamp { color: #6c757d; font-size: 13px; float: right; }
        .content { margin-top: 8px; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Fedipost</h1>
        <p>A federated posting node at <a href="{{.BaseURL}}">{{.BaseURL}}</a>.</p>
        <div class="post-form">
            <h3>Create a Post</h3>
            <form id="postForm">
                <label for="username">Username</label>
                <input type="text" id="username" name="username" required placeholder="Enter your username">
                <label for="content">Post Content</label>
                <textarea id="content" name="content" required placeholder="What's on your mind?"></textarea>
                <button type="submit">Post</button>
            </form>
        </div>
        <h3>Recent Posts</h3>
        <div id="postsList"></div>
    </div>
    <script>
        loadPosts();

        document.getElementById('postForm').addEventListener('submit', async (e) => {
            e.preventDefault();
            const username = document.getElementById('username').value;
            const content = document.getElementById('content').value;
            const response = await fetch('/api/posts', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ username, content }),
            });
            if (response.ok) {
                document.getElementById('content').value = '';
                loadPosts();
            } else {
                const error = await response.json();
                alert('Error: ' + error.message);
            }
        });

        async function loadPosts() {
            const response = await fetch('/api/posts');
            const posts = await response.json();
            const list = document.getElementById('postsList');
            list.innerHTML = '';
            if (posts.length === 0) {
                list.innerHTML = '<p>No posts yet. Be the first to post!</p>';
                return;
            }
            posts.forEach(post => {
                const el = document.createElement('div');
                el.className = 'post';
                const ts = new Date(post.createdAt).toLocaleString();
                el.innerHTML = '<span class="username"></span><span class="timestamp"></span><div class="content"></div>';
                el.querySelector('.username').textContent = '@' + post.username;
                el.querySelector('.timestamp').textContent = ts;
                el.querySelector('.content').textContent = post.content;
                list.appendChild(el);
            });
        }
    </script>
</body>
</html>
`))

func (s *Server) indexPage(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return indexTemplate.Execute(c.Response(), map[string]string{"BaseURL": s.config.BaseURL})
}
