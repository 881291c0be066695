package notify

import (
	"bytes"
	"html/template"

	"github.com/baselomar044-dev/qs-empire/internal/models"
)

const digestTemplate = `
<!DOCTYPE html>
<html dir="rtl">
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: 'Segoe UI', Tahoma, sans-serif; background: #f5f5f5; padding: 20px; direction: rtl; }
    .container { max-width: 700px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; }
    .header h1 { margin: 0; font-size: 28px; }
    .header p { margin: 10px 0 0; opacity: 0.9; }
    .stats { display: flex; justify-content: center; gap: 30px; padding: 20px; background: #f8f9ff; }
    .stat { text-align: center; }
    .stat-value { font-size: 32px; font-weight: bold; color: #667eea; }
    .stat-label { font-size: 12px; color: #666; }
    .content { padding: 30px; }
    .opportunity { background: #f8f9ff; border-radius: 12px; padding: 20px; margin-bottom: 20px; border-right: 4px solid #667eea; }
    .opp-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 10px; }
    .opp-title { font-size: 18px; font-weight: bold; color: #333; margin: 0; }
    .opp-platform { background: #667eea; color: white; padding: 4px 12px; border-radius: 20px; font-size: 12px; }
    .opp-details { display: flex; gap: 20px; margin: 15px 0; font-size: 14px; color: #666; }
    .success-rate { display: inline-block; padding: 4px 10px; border-radius: 10px; font-weight: bold; }
    .high { background: #d4edda; color: #155724; }
    .medium { background: #fff3cd; color: #856404; }
    .low { background: #f8d7da; color: #721c24; }
    .proposal { background: white; border: 1px solid #e0e0e0; border-radius: 8px; padding: 15px; margin: 15px 0; font-size: 14px; line-height: 1.6; }
    .proposal-label { font-size: 12px; color: #667eea; font-weight: bold; margin-bottom: 8px; }
    .apply-btn { display: inline-block; background: #667eea; color: white; padding: 10px 20px; border-radius: 8px; text-decoration: none; font-weight: bold; }
    .warning { background: #fff3cd; border: 1px solid #ffc107; padding: 10px; border-radius: 8px; margin: 10px 0; font-size: 13px; }
    .footer { background: #f8f9ff; padding: 20px; text-align: center; font-size: 12px; color: #666; }
    .cta { text-align: center; padding: 20px; }
    .cta a { display: inline-block; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 15px 40px; border-radius: 30px; text-decoration: none; font-weight: bold; font-size: 16px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🏗️ QS Empire</h1>
      <p>{{.Date}}</p>
    </div>

    <div class="stats">
      <div class="stat">
        <div class="stat-value">{{.TotalCount}}</div>
        <div class="stat-label">فرص جديدة</div>
      </div>
      <div class="stat">
        <div class="stat-value">{{.HighCount}}</div>
        <div class="stat-label">نسبة نجاح عالية</div>
      </div>
    </div>

    <div class="content">
      <h2>🎯 الفرص الجديدة</h2>

      {{if not .Opportunities}}<p>لم يتم العثور على فرص جديدة اليوم. سنبحث مرة أخرى غداً!</p>{{end}}

      {{range $index, $opp := .Opportunities}}
        <div class="opportunity">
          <div class="opp-header">
            <h3 class="opp-title">{{inc $index}}. {{$opp.Title}}</h3>
            <span class="opp-platform">{{$opp.Platform}}</span>
          </div>

          <div class="opp-details">
            <span>💰 {{$opp.Budget}}</span>
            <span class="success-rate {{tier $opp.SuccessRate}}">{{$opp.SuccessRate}}% نسبة النجاح</span>
          </div>

          {{if $opp.Warning}}<div class="warning">⚠️ {{$opp.Warning}}</div>{{end}}

          <div class="proposal">
            <div class="proposal-label">📝 PROPOSAL جاهز للنسخ:</div>
            {{$opp.Proposal}}
          </div>

          <a href="{{$opp.Link}}" class="apply-btn" target="_blank">🔗 قدّم الآن</a>
        </div>
      {{end}}
    </div>

    <div class="cta">
      <a href="https://qs-empire.vercel.app">🌐 افتح لوحة التحكم</a>
    </div>

    <div class="footer">
      <p>🤖 تم إنشاء هذا التقرير تلقائياً بواسطة QS Empire AI</p>
      <p>هذا النظام ملكك 100% - يعمل بشكل مستقل</p>
    </div>
  </div>
</body>
</html>
`

// BuildDigestHTML renders the digest email body
func (s *Service) BuildDigestHTML(digest *models.Digest) (string, error) {
	t := template.New("digest").Funcs(template.FuncMap{
		"tier": s.Tier,
		"inc":  func(i int) int { return i + 1 },
	})

	t, err := t.Parse(digestTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, digest); err != nil {
		return "", err
	}

	return buf.String(), nil
}
