package rewrite

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// bootstrapScript builds the client-side synchronization script injected
// before the closing body tag.
//
// The script keeps the browser's visible URL slug-based while the upstream
// app navigates by page ID internally: it watches the upstream app's root
// container for the navigation chrome to render, swaps a trailing page ID in
// the visible URL for its slug, injects a theme-toggle control, and
// intercepts history and XMLHttpRequest calls to translate between the two
// URL forms for the remainder of the page's life.
func (rewriter *Rewriter) bootstrapScript() (string, error) {
	config := rewriter.Tenant

	slugToPage, err := json.Marshal(config.SlugToPage)
	if err != nil {
		return "", fmt.Errorf("rewrite: unable to serialize slug mapping: %w", err)
	}

	pageToSlug, err := json.Marshal(config.PageToSlug)
	if err != nil {
		return "", fmt.Errorf("rewrite: unable to serialize page mapping: %w", err)
	}

	slugs, err := json.Marshal(config.Slugs)
	if err != nil {
		return "", fmt.Errorf("rewrite: unable to serialize slug list: %w", err)
	}

	pages, err := json.Marshal(config.Pages)
	if err != nil {
		return "", fmt.Errorf("rewrite: unable to serialize page list: %w", err)
	}

	var buf strings.Builder
	err = bootstrapTemplate.Execute(&buf, bootstrapContext{
		SlugToPage:   string(slugToPage),
		PageToSlug:   string(pageToSlug),
		Slugs:        string(slugs),
		Pages:        string(pages),
		Domain:       config.Domain,
		DomainBase:   strings.ReplaceAll(config.Domain, "."+rewriter.UpstreamSite, ""),
		Site:         rewriter.UpstreamSite,
		CustomScript: config.CustomScript,
	})
	if err != nil {
		return "", fmt.Errorf("rewrite: unable to render bootstrap script: %w", err)
	}

	return buf.String(), nil
}

type bootstrapContext struct {
	SlugToPage   string
	PageToSlug   string
	Slugs        string
	Pages        string
	Domain       string
	DomainBase   string
	Site         string
	CustomScript string
}

var bootstrapTemplate = template.Must(template.New("bootstrap").Parse(`<script>
window.CONFIG = window.CONFIG || {};
window.CONFIG.domainBaseUrl = location.origin;
const SLUG_TO_PAGE = {{.SlugToPage}};
const PAGE_TO_SLUG = {{.PageToSlug}};
const slugs = {{.Slugs}};
const pages = {{.Pages}};
const el = document.createElement('div');
let redirected = false;

function getPage() { return location.pathname.slice(-32); }
function getSlug() { return location.pathname.slice(1); }

function updateSlug() {
    const slug = PAGE_TO_SLUG[getPage()];
    if (slug != null) history.replaceState(history.state, '', '/' + slug);
}

function onDark() {
    el.innerHTML = '<div title="Change to Light Mode" style="margin: auto 14px 0 0; min-width: 0;"><div role="button" tabindex="0" style="user-select: none; transition: background 120ms ease-in; cursor: pointer; border-radius: 44px;"><div style="display: flex; height: 14px; width: 26px; border-radius: 44px; padding: 2px; background: rgb(46, 170, 220); transition: background 200ms ease, box-shadow 200ms ease;"><div style="width: 14px; height: 14px; border-radius: 44px; background: white; transition: transform 200ms ease-out, background 200ms ease-out; transform: translateX(12px);"></div></div></div></div>';
    document.body.classList.add('dark');
    if (window.__console && window.__console.environment && window.__console.environment.ThemeStore) {
        window.__console.environment.ThemeStore.setState({ mode: 'dark' });
    }
}

function onLight() {
    el.innerHTML = '<div title="Change to Dark Mode" style="margin: auto 14px 0 0; min-width: 0;"><div role="button" tabindex="0" style="user-select: none; transition: background 120ms ease-in; cursor: pointer; border-radius: 44px;"><div style="display: flex; height: 14px; width: 26px; border-radius: 44px; padding: 2px; background: rgba(135, 131, 120, 0.3); transition: background 200ms ease, box-shadow 200ms ease;"><div style="width: 14px; height: 14px; border-radius: 44px; background: white; transition: transform 200ms ease-out, background 200ms ease-out; transform: translateX(0);"></div></div></div></div>';
    document.body.classList.remove('dark');
    if (window.__console && window.__console.environment && window.__console.environment.ThemeStore) {
        window.__console.environment.ThemeStore.setState({ mode: 'light' });
    }
}

function toggle() {
    document.body.classList.contains('dark') ? onLight() : onDark();
}

function addDarkModeButton(device) {
    const nav = device === 'web'
        ? document.querySelector('.notion-topbar').firstChild
        : document.querySelector('.notion-topbar-mobile');
    el.className = 'toggle-mode';
    el.addEventListener('click', toggle);
    nav.appendChild(el);
    if (window.matchMedia && window.matchMedia('(prefers-color-scheme: dark)').matches) {
        onDark();
    } else {
        onLight();
    }
    window.matchMedia('(prefers-color-scheme: dark)').addEventListener('change', toggle);
}

const observer = new MutationObserver(() => {
    if (redirected) return;
    const nav = document.querySelector('.notion-topbar');
    const mobileNav = document.querySelector('.notion-topbar-mobile');
    if ((nav && nav.firstChild && nav.firstChild.firstChild) || (mobileNav && mobileNav.firstChild)) {
        redirected = true;
        updateSlug();
        addDarkModeButton(nav ? 'web' : 'mobile');
        const onpopstate = window.onpopstate;
        window.onpopstate = function() {
            if (slugs.includes(getSlug())) {
                const page = SLUG_TO_PAGE[getSlug()];
                if (page) history.replaceState(history.state, 'bypass', '/' + page);
            }
            onpopstate.apply(this, arguments);
            updateSlug();
        };
    }
});
observer.observe(document.querySelector('#notion-app'), { childList: true, subtree: true });

const originalReplaceState = window.history.replaceState;
window.history.replaceState = function(state) {
    if (arguments[1] !== 'bypass' && slugs.includes(getSlug())) return;
    return originalReplaceState.apply(window.history, arguments);
};

const originalPushState = window.history.pushState;
window.history.pushState = function(state) {
    const dest = new URL(location.protocol + '//' + location.host + arguments[2]);
    const id = dest.pathname.slice(-32);
    if (pages.includes(id)) arguments[2] = '/' + PAGE_TO_SLUG[id];
    return originalPushState.apply(window.history, arguments);
};

const open = window.XMLHttpRequest.prototype.open;
window.XMLHttpRequest.prototype.open = function() {
    arguments[1] = arguments[1].replace('{{.Domain}}', '{{.DomainBase}}.{{.Site}}');
    return open.apply(this, arguments);
};
</script>{{.CustomScript}}`))
