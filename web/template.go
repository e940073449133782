package web

const pageTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>賃貸物件情報の可視化</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  body { font-family: sans-serif; margin: 2em; }
  fieldset { border: 1px solid #ccc; margin-bottom: 1em; }
  #map { height: 420px; margin-bottom: 1em; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; }
  th { background: #f5f5f5; }
</style>
</head>
<body>
<h1>賃貸物件情報の可視化</h1>

<form method="post" action="/search">
  <fieldset>
    <legend>■ エリア選択</legend>
    {{range .Areas}}
    <label><input type="radio" name="area" value="{{.Name}}"{{if .Selected}} checked{{end}}> {{.Name}}</label>
    {{end}}
  </fieldset>

  <fieldset>
    <legend>■ 家賃範囲 (万円)</legend>
    <input type="number" name="price_min" step="0.1" min="{{.MinRent}}" max="{{.MaxRent}}" value="{{.PriceMin}}">
    〜
    <input type="number" name="price_max" step="0.1" min="{{.MinRent}}" max="{{.MaxRent}}" value="{{.PriceMax}}">
  </fieldset>

  <fieldset>
    <legend>■ 間取り選択</legend>
    {{range .Plans}}
    <label><input type="checkbox" name="floor_plan" value="{{.Name}}"{{if .Checked}} checked{{end}}> {{.Name}}</label>
    {{end}}
  </fieldset>

  <button type="submit">検索＆更新</button>
  <button type="submit" formaction="/criteria">条件のみ保存</button>
</form>

{{if .SearchExecuted}}
<p>物件検索数: {{.MatchCount}}件 / 全{{.Total}}件</p>

<div id="map"></div>
<script>
  var map = L.map('map').setView([{{.Map.CenterLat}}, {{.Map.CenterLon}}], {{.Map.Zoom}});
  L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);

  var markers = {{.MarkersJSON}};
  markers.forEach(function (m) {
    var popup = '<b>名称:</b> ' + m.name + '<br>' +
      '<b>アドレス:</b> ' + m.address + '<br>' +
      '<b>家賃:</b> ' + m.rent + '<br>' +
      '<b>間取り:</b> ' + m.floorPlan + '<br>' +
      '<a href="' + m.detailUrl + '" target="_blank">物件詳細</a>';
    L.marker([m.lat, m.lon]).addTo(map).bindPopup(popup, { maxWidth: 400 });
  });
</script>

<form method="post" action="/display">
  表示オプションを選択してください:
  <label><input type="radio" name="mode" value="map"{{if not .ShowAll}} checked{{end}} onchange="this.form.submit()"> 地図上の検索物件のみ</label>
  <label><input type="radio" name="mode" value="all"{{if .ShowAll}} checked{{end}} onchange="this.form.submit()"> すべての検索物件</label>
</form>

<p><a href="/export.csv">CSVダウンロード</a></p>

<table>
  <tr><th>物件番号</th><th>名称</th><th>アドレス</th><th>階数</th><th>家賃</th><th>間取り</th><th>物件詳細URL</th></tr>
  {{range .Rows}}
  <tr>
    <td>{{.No}}</td>
    <td>{{.Name}}</td>
    <td>{{.Address}}</td>
    <td>{{.FloorLevel}}</td>
    <td>{{.Rent}}</td>
    <td>{{.FloorPlan}}</td>
    <td><a href="{{.Link.Href}}" target="_blank">{{.Link.Label}}</a></td>
  </tr>
  {{end}}
</table>
{{end}}

</body>
</html>
`
