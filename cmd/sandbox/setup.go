package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"fpsandbox/internal/config"
	"fpsandbox/internal/game"
	"fpsandbox/internal/graphics"
	"fpsandbox/internal/graphics/renderables/lightcube"
	"fpsandbox/internal/graphics/renderables/scene"
	renderer "fpsandbox/internal/graphics/renderer"
	"fpsandbox/internal/input"
	"fpsandbox/internal/player"
	"fpsandbox/internal/texarray"
	"fpsandbox/pkg/model"
)

func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// defaultBindings is written to the keymap file on first start
func defaultBindings() map[string][]input.Key {
	return map[string][]input.Key{
		input.ActionMoveForward:     {input.Key(glfw.KeyW), input.Key(glfw.KeyUp)},
		input.ActionMoveBackward:    {input.Key(glfw.KeyS), input.Key(glfw.KeyDown)},
		input.ActionMoveLeft:        {input.Key(glfw.KeyA), input.Key(glfw.KeyLeft)},
		input.ActionMoveRight:       {input.Key(glfw.KeyD), input.Key(glfw.KeyRight)},
		input.ActionJump:            {input.Key(glfw.KeySpace)},
		input.ActionToggleWireframe: {input.Key(glfw.KeyF)},
		input.ActionQuit:            {input.Key(glfw.KeyEscape)},
	}
}

func movementSettings(cfg config.MovementConfig) player.Settings {
	return player.Settings{
		MoveSpeed:    cfg.MoveSpeed,
		JumpVelocity: cfg.JumpVelocity,
		Gravity:      cfg.Gravity,
		GroundHeight: cfg.GroundHeight,
		BodyHeight:   cfg.BodyHeight,
	}
}

// loadModels builds every configured model. A model that fails to load is logged and skipped.
func loadModels(cfg config.AssetsConfig, textures model.TextureLoader, log *zap.Logger) []model.Mesh {
	loader := model.NewLoader(filepath.Join(cfg.ModelsDir, "models"))
	builder := model.NewBuilder(textures, cfg.ModelsDir, log)

	var meshes []model.Mesh
	for _, name := range cfg.Models {
		m, err := loader.LoadModel(name)
		if err != nil {
			log.Warn("model skipped", zap.String("model", name), zap.Error(err))
			continue
		}
		built := builder.Build(m)
		log.Info("model loaded", zap.String("model", name), zap.Int("meshes", len(built)))
		meshes = append(meshes, built...)
	}
	log.Info("textures loaded", zap.Int("distinct", builder.Loaded()))
	return meshes
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	actions := input.NewActionMap()
	keymap := input.NewKeymap(cfg.Assets.Keymap, actions, log)
	if err := keymap.LoadOrCreate(defaultBindings()); err != nil {
		return fmt.Errorf("keymap: %w", err)
	}

	textures := texarray.NewManager(graphics.NewTextureArray(), log)
	if err := textures.Configure(cfg.Textures.Width, cfg.Textures.Height, cfg.Textures.Capacity); err != nil {
		return fmt.Errorf("texture array: %w", err)
	}
	defer textures.Delete()

	meshes := loadModels(cfg.Assets, textures, log)
	if err := textures.GenerateMipmaps(); err != nil {
		return fmt.Errorf("texture array: %w", err)
	}

	cam := player.NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.Sensitivity = cfg.Camera.Sensitivity
	cam.FOV = cfg.Camera.FOV
	controller := player.NewController(movementSettings(cfg.Movement), cam, 0, 3)

	fbWidth, fbHeight := window.GetFramebufferSize()
	projection := graphics.NewProjection(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far, fbWidth, fbHeight)

	r, err := renderer.NewRenderer(
		projection,
		scene.NewScene(textures, meshes, cfg.Lighting),
		lightcube.NewLightCube(mgl32.Vec3(cfg.Lighting.PointPosition), mgl32.Vec3(cfg.Lighting.PointColor)),
	)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer r.Dispose()
	r.UpdateViewport(fbWidth, fbHeight)

	session := game.NewSession(actions, keymap, controller, log)
	session.OnQuit = func() { window.SetShouldClose(true) }
	session.OnToggleWireframe = func() {
		log.Debug("wireframe toggled", zap.Bool("enabled", r.ToggleWireframe()))
	}

	if cfg.Assets.WatchKeymap {
		watcher, err := input.NewKeymapWatcher(cfg.Assets.Keymap)
		if err != nil {
			log.Warn("keymap hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			session.Changes = watcher
		}
	}

	setupInputHandlers(window, actions, cam, r)

	NewGameLoop(window, session, r, cfg.Window.FPSLimit, log).Run()
	return nil
}
